package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fileshare_files_created_total",
		Help: "Files accepted by the upload endpoint.",
	})

	// declaredBytesTotal sums uploader-declared sizes, not decoded payload bytes.
	declaredBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fileshare_declared_bytes_total",
		Help: "Sum of declared file sizes of accepted uploads.",
	})

	downloadsNotifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fileshare_downloads_notified_total",
		Help: "Downloaded notifications processed, including unknown file ids.",
	})
)
