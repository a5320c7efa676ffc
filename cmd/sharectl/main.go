package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/anthanhphan/go-fileshare/internal/client"
	"github.com/anthanhphan/gosdk/logger"
)

const defaultServer = "http://localhost:8090"

const usage = `usage: sharectl [-server URL] [-identity FILE] <command>

commands:
  upload PATH                  upload a file and print its share link
  info FILE_ID                 show file details (and metrics if you uploaded it)
  download [-out DIR] FILE_ID  download a file; type p to pause/resume, c to cancel
`

func main() {
	logger.InitLogger(&logger.Config{
		LogLevel:    logger.LevelInfo,
		LogEncoding: logger.EncodingJSON,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		stop()
		log.Fatalf("sharectl: %v", err)
	}
}

type cli struct {
	api          *client.Client
	identityPath string
	stdin        io.Reader
	out          io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("sharectl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	server := fs.String("server", envOr("FILESHARE_SERVER", defaultServer), "file-sharing server base URL")
	identity := fs.String("identity", "", "uploader id file (defaults to the user config dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	api, err := client.New(*server)
	if err != nil {
		return err
	}
	c := &cli{api: api, identityPath: *identity, stdin: stdin, out: out}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "upload":
		return c.upload(ctx, rest)
	case "info":
		return c.info(ctx, rest)
	case "download":
		return c.download(ctx, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) uploaderID() (string, error) {
	path := c.identityPath
	if path == "" {
		var err error
		if path, err = client.DefaultIdentityPath(); err != nil {
			return "", err
		}
	}
	return client.LoadOrCreateUploaderID(path)
}

func (c *cli) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("upload takes exactly one PATH")
	}
	uploaderID, err := c.uploaderID()
	if err != nil {
		return err
	}

	res, err := client.NewUploader(c.api, uploaderID).Upload(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "file id:    %s\nshare link: %s\n", res.File.FileID, res.ShareURL)
	return nil
}

func (c *cli) info(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("info takes exactly one FILE_ID")
	}
	rec, err := c.api.GetFile(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "name:       %s\nsize:       %d bytes\ntype:       %s\nuploaded:   %s\n",
		rec.FileName, rec.FileSize, rec.MimeType, rec.UploadTime)

	uploaderID, err := c.uploaderID()
	if err != nil || !client.IsOwner(rec, uploaderID) {
		return nil
	}
	m, err := c.api.GetFileMetrics(ctx, rec.FileID, uploaderID)
	if err != nil {
		return err
	}
	downloadedAt := "never"
	if m.DownloadTime != nil {
		downloadedAt = *m.DownloadTime
	}
	fmt.Fprintf(c.out, "downloads:  %d\nlast seen:  %s\n", m.TotalDownloads, downloadedAt)
	return nil
}

func (c *cli) download(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	fs.SetOutput(c.out)
	outDir := fs.String("out", ".", "directory to save the file in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("download takes exactly one FILE_ID")
	}

	d := client.NewDownloader(c.api, *outDir)
	defer d.Close()

	dl := d.New(fs.Arg(0), func(p client.Progress) {
		status := p.State.String()
		if p.Paused {
			status = "paused"
		}
		fmt.Fprintf(c.out, "\r%-11s %5.1f%% %d/%d bytes", status, p.Percent, p.Received, p.Total)
	})

	go c.readControls(dl)

	path, err := dl.Start(ctx)
	fmt.Fprintln(c.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "saved to %s\n", path)
	return nil
}

// readControls maps stdin lines to download controls until stdin closes.
func (c *cli) readControls(dl *client.Download) {
	scanner := bufio.NewScanner(c.stdin)
	for scanner.Scan() {
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "p":
			if !dl.Pause() {
				dl.Resume()
			}
		case "c":
			dl.Cancel()
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
