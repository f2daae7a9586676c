package uploader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anthanhphan/go-file-uploader/internal/client/uploader/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testEndpoint = "http://uploads.test/api/upload"

func reply(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// formFiles returns the names and contents sent under field.
func formFiles(t *testing.T, req *http.Request, field string) ([]string, []string) {
	t.Helper()
	require.NoError(t, req.ParseMultipartForm(32<<20))

	var names, contents []string
	for _, fh := range req.MultipartForm.File[field] {
		f, err := fh.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		_ = f.Close()
		names = append(names, fh.Filename)
		contents = append(contents, string(data))
	}
	return names, contents
}

func threeFiles() []File {
	return []File{
		NewFile("a", []byte("alpha")),
		NewFile("b", []byte("beta")),
		NewFile("c", []byte("gamma")),
	}
}

func TestUploader_EmptySelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: any request fails the test.
	doer := mocks.NewMockDoer(ctrl)
	u := New(testEndpoint, WithDoer(doer))

	state := u.UploadBatch(context.Background())
	assert.Equal(t, "Please select files to upload.", state.Message)

	u.Select(nil)
	state = u.UploadSequential(context.Background())
	assert.Equal(t, "Please select files to upload.", state.Message)
	assert.Equal(t, 0, state.Progress)
	assert.Nil(t, state.Stats)
}

func TestUploader_SelectClearsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doer := mocks.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Return(reply(http.StatusOK, `{"message":"ok","files":["a","b","c"]}`), nil)

	u := New(testEndpoint, WithDoer(doer))
	u.Select(threeFiles())
	state := u.UploadBatch(context.Background())
	require.Equal(t, 100, state.Progress)

	u.Select([]File{NewFile("d", []byte("delta"))})
	state = u.State()
	assert.Empty(t, state.Message)
	assert.Equal(t, 0, state.Progress)
	assert.Nil(t, state.Stats)
	assert.Equal(t, 1, state.Batch.Count())

	u.Select(nil)
	assert.Equal(t, 0, u.State().Batch.Count())
}

func TestUploader_UploadBatch(t *testing.T) {
	tests := []struct {
		name         string
		resp         *http.Response
		err          error
		wantMessage  string
		wantProgress int
	}{
		{
			name:         "Success",
			resp:         reply(http.StatusOK, `{"message":"Files uploaded successfully.","files":["a","b","c"]}`),
			wantMessage:  "Uploaded 3 file(s) successfully.",
			wantProgress: 100,
		},
		{
			name:        "ServerError",
			resp:        reply(http.StatusInternalServerError, `{"message":"Error uploading files."}`),
			wantMessage: MsgBatchFailed,
		},
		{
			name:        "NetworkError",
			err:         errors.New("connection refused"),
			wantMessage: MsgBatchError,
		},
		{
			name:        "MalformedReply",
			resp:        reply(http.StatusOK, `<html>`),
			wantMessage: MsgBatchError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			doer := mocks.NewMockDoer(ctrl)
			doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, testEndpoint, req.URL.String())
				names, contents := formFiles(t, req, FieldFiles)
				assert.Equal(t, []string{"a", "b", "c"}, names)
				assert.Equal(t, []string{"alpha", "beta", "gamma"}, contents)
				return tt.resp, tt.err
			})

			u := New(testEndpoint, WithDoer(doer))
			u.Select(threeFiles())
			state := u.UploadBatch(context.Background())

			assert.Equal(t, tt.wantMessage, state.Message)
			assert.Equal(t, tt.wantProgress, state.Progress)
			assert.Nil(t, state.Stats)
		})
	}
}

func TestUploader_UploadSequentialStopsAtFirstFailure(t *testing.T) {
	failures := map[string]func() (*http.Response, error){
		"NetworkError": func() (*http.Response, error) { return nil, errors.New("network down") },
		"ServerError": func() (*http.Response, error) {
			return reply(http.StatusInternalServerError, `{"message":"Error uploading file."}`), nil
		},
	}

	for name, fail := range failures {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var sent []string
			doer := mocks.NewMockDoer(ctrl)
			doer.EXPECT().Do(gomock.Any()).Times(2).DoAndReturn(func(req *http.Request) (*http.Response, error) {
				names, _ := formFiles(t, req, FieldFile)
				require.Len(t, names, 1)
				sent = append(sent, names[0])
				if names[0] == "b" {
					return fail()
				}
				return reply(http.StatusOK, `{"message":"File uploaded successfully.","fileName":"a"}`), nil
			})

			u := New(testEndpoint, WithDoer(doer))
			u.Select(threeFiles())
			state := u.UploadSequential(context.Background())

			assert.Equal(t, []string{"a", "b"}, sent, "c must never be sent")
			assert.Equal(t, "Failed to upload b.", state.Message)
			assert.Equal(t, 33, state.Progress)
			assert.Nil(t, state.Stats)
		})
	}
}

func TestUploader_UploadSequentialStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doer := mocks.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Times(2).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		return reply(http.StatusOK, `{"message":"File uploaded successfully."}`), nil
	})

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(2 * time.Second)}
	clock := func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}

	var progress []int
	u := New(testEndpoint,
		WithDoer(doer),
		WithClock(clock),
		WithProgress(func(s State) { progress = append(progress, s.Progress) }),
	)
	u.Select([]File{
		NewFile("one.bin", make([]byte, bytesPerMB)),
		NewFile("two.bin", make([]byte, bytesPerMB)),
	})
	state := u.UploadSequential(context.Background())

	require.NotNil(t, state.Stats)
	assert.Equal(t, "Uploaded 2 file(s) successfully.", state.Message)
	assert.Equal(t, 100, state.Progress)
	assert.Equal(t, 2*time.Second, state.Stats.Elapsed)
	assert.InDelta(t, 1.0, state.Stats.FilesPerSecond, 1e-9)
	assert.InDelta(t, 2.0, state.Stats.SizeMB, 1e-9)
	assert.InDelta(t, 1.0, state.Stats.MBPerSecond, 1e-9)
	assert.Equal(t, []int{50, 100, 100}, progress)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(2, 2_097_152, 2*time.Second)
	assert.Equal(t, "Time: 2.00s | Files/sec: 1.00 | Speed: 1.00 MB/s (2.00 MB total)", stats.String())

	zero := ComputeStats(3, 1024, 0)
	assert.Zero(t, zero.FilesPerSecond)
	assert.Zero(t, zero.MBPerSecond)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 100, percent(3, 3))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("B"), 0o644))

	files, err := LoadFiles([]string{path})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, int64(1), files[0].Size)
	assert.Equal(t, []byte("B"), files[0].Content)

	_, err = LoadFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestUploader_UploadBatchClearsPreviousRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doer := mocks.NewMockDoer(ctrl)
	gomock.InOrder(
		doer.EXPECT().Do(gomock.Any()).Times(3).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return reply(http.StatusOK, `{"message":"File uploaded successfully."}`), nil
		}),
		doer.EXPECT().Do(gomock.Any()).Return(reply(http.StatusInternalServerError, `{"message":"Error uploading files."}`), nil),
	)

	u := New(testEndpoint, WithDoer(doer))
	u.Select(threeFiles())
	state := u.UploadSequential(context.Background())
	require.Equal(t, 100, state.Progress)
	require.NotNil(t, state.Stats)

	state = u.UploadBatch(context.Background())
	assert.Equal(t, MsgBatchFailed, state.Message)
	assert.Equal(t, 0, state.Progress)
	assert.Nil(t, state.Stats)
}
