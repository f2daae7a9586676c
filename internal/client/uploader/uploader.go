package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"slices"
	"time"

	"github.com/anthanhphan/gosdk/logger"
)

//go:generate mockgen -destination=mocks/doer_mock.go -package=mocks -source=uploader.go

// Multipart field names understood by the upload endpoint.
const (
	FieldFile  = "file"
	FieldFiles = "files"
)

const (
	MsgSelectFiles   = "Please select files to upload."
	MsgBatchFailed   = "Failed to upload the files."
	MsgBatchError    = "Error occurred while uploading the files."
	msgUploadedFmt   = "Uploaded %d file(s) successfully."
	msgFileFailedFmt = "Failed to upload %s."
)

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// State is what the upload page displays.
type State struct {
	Batch    Batch
	Message  string
	Progress int // 0-100
	Stats    *Stats
}

// Uploader owns the state of one upload page. It is not safe for concurrent use.
type Uploader struct {
	endpoint   string
	doer       Doer
	now        func() time.Time
	onProgress func(State)

	state State
}

type Option func(*Uploader)

// WithDoer replaces the default http.Client, which has no timeout.
func WithDoer(d Doer) Option {
	return func(u *Uploader) { u.doer = d }
}

// WithClock sets the time source used for throughput statistics.
func WithClock(now func() time.Time) Option {
	return func(u *Uploader) { u.now = now }
}

// WithProgress registers a callback run after every state change during an upload.
func WithProgress(fn func(State)) Option {
	return func(u *Uploader) { u.onProgress = fn }
}

// New creates an Uploader posting to endpoint, e.g. http://localhost:8090/api/upload.
func New(endpoint string, opts ...Option) *Uploader {
	u := &Uploader{
		endpoint: endpoint,
		doer:     &http.Client{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// State returns a copy of the current display state.
func (u *Uploader) State() State {
	s := u.state
	s.Batch.Files = slices.Clone(u.state.Batch.Files)
	if u.state.Stats != nil {
		stats := *u.state.Stats
		s.Stats = &stats
	}
	return s
}

// Select replaces the batch and clears message, progress and statistics.
func (u *Uploader) Select(files []File) {
	u.state = State{Batch: Batch{Files: slices.Clone(files)}}
}

// UploadBatch sends the whole batch in one request under the repeated "files" field.
func (u *Uploader) UploadBatch(ctx context.Context) State {
	if u.state.Batch.Count() == 0 {
		u.setMessage(MsgSelectFiles)
		return u.State()
	}

	u.state.Message = ""
	u.state.Progress = 0
	u.state.Stats = nil

	status, body, err := u.post(ctx, FieldFiles, u.state.Batch.Files)
	if err != nil {
		logger.Errorw("Error uploading files", "files", u.state.Batch.Count(), "error", err.Error())
		u.setMessage(MsgBatchError)
		return u.State()
	}
	if !isSuccess(status) {
		logger.Warnw("Batch upload rejected", "status", status, "files", u.state.Batch.Count())
		u.setMessage(MsgBatchFailed)
		return u.State()
	}

	var reply struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		logger.Errorw("Invalid upload reply", "error", err.Error())
		u.setMessage(MsgBatchError)
		return u.State()
	}

	u.state.Progress = 100
	u.setMessage(fmt.Sprintf(msgUploadedFmt, len(reply.Files)))
	return u.State()
}

// UploadSequential sends one request per file in selection order.
// The first failure stops the batch; statistics are only computed when every file succeeded.
func (u *Uploader) UploadSequential(ctx context.Context) State {
	batch := u.state.Batch
	if batch.Count() == 0 {
		u.setMessage(MsgSelectFiles)
		return u.State()
	}

	u.state.Message = ""
	u.state.Progress = 0
	u.state.Stats = nil

	start := u.now()
	uploaded := 0
	for _, f := range batch.Files {
		if err := u.uploadOne(ctx, f); err != nil {
			logger.Errorw("Error uploading file", "file_name", f.Name, "uploaded", uploaded, "error", err.Error())
			u.setMessage(fmt.Sprintf(msgFileFailedFmt, f.Name))
			return u.State()
		}
		uploaded++
		u.state.Progress = percent(uploaded, batch.Count())
		u.notify()
	}

	stats := ComputeStats(batch.Count(), batch.TotalBytes(), u.now().Sub(start))
	u.state.Stats = &stats
	u.setMessage(fmt.Sprintf(msgUploadedFmt, batch.Count()))

	logger.Infow(
		"Upload completed",
		"files", stats.Files,
		"size_mb", stats.SizeMB,
		"elapsed_ms", stats.Elapsed.Milliseconds(),
	)
	return u.State()
}

func (u *Uploader) uploadOne(ctx context.Context, f File) error {
	status, _, err := u.post(ctx, FieldFile, []File{f})
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return fmt.Errorf("unexpected status %d", status)
	}
	return nil
}

// post sends files as one multipart form and returns the status and body.
func (u *Uploader) post(ctx context.Context, field string, files []File) (int, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return 0, nil, fmt.Errorf("create form part %q: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return 0, nil, fmt.Errorf("write form part %q: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return 0, nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &buf)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.doer.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read reply: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (u *Uploader) setMessage(msg string) {
	u.state.Message = msg
	u.notify()
}

func (u *Uploader) notify() {
	if u.onProgress != nil {
		u.onProgress(u.State())
	}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func percent(done, total int) int {
	return int(math.Round(float64(done) / float64(total) * 100))
}
