// Package photo turns a selected image file into the text-safe base64 payload
// stored in the profile form.
package photo

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/pkg/async"
)

// Encoder reads the first selected file and produces its base64 payload.
type Encoder struct {
	logger   *zap.Logger
	maxBytes int64
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithLogger sets the logger used for read failures.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Encoder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxBytes caps the size of the file that will be encoded. Zero disables
// the limit.
func WithMaxBytes(n int64) Option {
	return func(e *Encoder) {
		if n >= 0 {
			e.maxBytes = n
		}
	}
}

// NewEncoder constructs an Encoder.
func NewEncoder(options ...Option) *Encoder {
	e := &Encoder{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Encode reads the first of files and resolves with its base64 payload (the
// data URL body without its header). An empty selection resolves immediately
// with ErrNoFile.
func (e *Encoder) Encode(ctx context.Context, files []Source) *async.Task[string] {
	if len(files) == 0 || files[0] == nil {
		return async.Resolved("", ErrNoFile)
	}
	file := files[0]
	return async.Go(func() (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := e.read(file)
		if err != nil {
			e.logger.Warn("photo read failed",
				zap.String("file", file.Name()),
				zap.Error(err),
			)
			return "", err
		}
		return StripDataURLHeader(DataURL(contentType(file.Name(), data), data)), nil
	})
}

func (e *Encoder) read(file Source) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("photo: open %s: %w", file.Name(), err)
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	if e.maxBytes > 0 {
		r = io.LimitReader(rc, e.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("photo: read %s: %w", file.Name(), err)
	}
	if e.maxBytes > 0 && int64(len(data)) > e.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// DataURL renders data as a base64 data URL.
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// StripDataURLHeader drops everything up to and including the first comma.
// Values without a comma are returned unchanged.
func StripDataURLHeader(value string) string {
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		return value[idx+1:]
	}
	return value
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}
