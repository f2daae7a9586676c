package domain

import "io"

// IncomingFile is one file part received in an upload request.
// Open is called once, in request order, right before the file is stored.
type IncomingFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// UploadResult lists the stored names of one request in request order.
// It is filled progressively, so on failure it holds the files already on disk.
type UploadResult struct {
	Stored []string
}
