// Package assets loads static report assets such as the header logo.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"docreport/internal/storage"
)

// maxLogoBytes bounds logo reads from any source.
const maxLogoBytes = 2 << 20

// LogoSource returns the report logo as base64. An empty result means no logo.
type LogoSource interface {
	LogoBase64(ctx context.Context) string
}

// FileLogo reads the logo from the local filesystem once and caches it.
type FileLogo struct {
	Path string
	Log  *zap.Logger

	once sync.Once
	data string
}

func (f *FileLogo) LogoBase64(ctx context.Context) string {
	f.once.Do(func() {
		file, err := os.Open(f.Path)
		if err != nil {
			logger(f.Log).Warn("logo not loaded", zap.String("path", f.Path), zap.Error(err))
			return
		}
		defer file.Close()
		f.data, err = encode(file)
		if err != nil {
			logger(f.Log).Warn("logo not loaded", zap.String("path", f.Path), zap.Error(err))
		}
	})
	return f.data
}

// ObjectLogo fetches the logo from object storage. Successful reads are cached;
// failures are retried on the next call.
type ObjectLogo struct {
	Store storage.Storage
	Key   string
	Log   *zap.Logger

	mu   sync.Mutex
	data string
}

func (o *ObjectLogo) LogoBase64(ctx context.Context) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.data != "" {
		return o.data
	}

	rc, _, err := o.Store.Get(ctx, o.Key)
	if err != nil {
		logger(o.Log).Warn("logo not loaded", zap.String("key", o.Key), zap.Error(err))
		return ""
	}
	defer rc.Close()

	data, err := encode(rc)
	if err != nil {
		logger(o.Log).Warn("logo not loaded", zap.String("key", o.Key), zap.Error(err))
		return ""
	}
	o.data = data
	return data
}

func encode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxLogoBytes+1))
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	if len(raw) > maxLogoBytes {
		return "", fmt.Errorf("logo exceeds %d bytes", maxLogoBytes)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
