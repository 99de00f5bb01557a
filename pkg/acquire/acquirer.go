package acquire

import (
	"context"
	"io"
	"path/filepath"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/filesystem"
	"github.com/arthur-debert/pluck/pkg/internal/hashutil"
	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/rs/zerolog"
)

// Acquirer writes transfer items to a filesystem
type Acquirer struct {
	fs      types.FS
	fetcher Fetcher
	logger  zerolog.Logger
}

// New creates an Acquirer. A nil fetcher falls back to NewHTTPFetcher(nil).
func New(fs types.FS, fetcher Fetcher) *Acquirer {
	if fetcher == nil {
		fetcher = NewHTTPFetcher(nil)
	}
	return &Acquirer{
		fs:      fs,
		fetcher: fetcher,
		logger:  logging.GetLogger("acquire"),
	}
}

// Acquire copies or downloads item and returns the number of bytes written
func (a *Acquirer) Acquire(ctx context.Context, item types.TransferItem) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(err, errors.ErrCanceled, "acquisition canceled").
			WithDetail("source", item.SourcePath)
	}
	if item.IsLocal {
		return a.Local(item)
	}
	return a.Remote(ctx, item)
}

// Local copies a file from the filesystem into the item's destination
func (a *Acquirer) Local(item types.TransferItem) (int64, error) {
	info, err := a.fs.Stat(item.SourcePath)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrSourceNotFound, "source %s not found", item.SourcePath).
			WithDetail("source", item.SourcePath)
	}
	if info.IsDir() {
		return 0, errors.Newf(errors.ErrFileAccess, "source %s is a directory", item.SourcePath).
			WithDetail("source", item.SourcePath)
	}

	if err := filesystem.EnsureDir(a.fs, item.DestinationDirectory); err != nil {
		return 0, err
	}

	dest := item.DestinationPath()
	if filepath.Clean(dest) == filepath.Clean(item.SourcePath) {
		a.logger.Debug().Str("path", dest).Msg("Source and destination are the same file")
		return info.Size(), nil
	}

	src, err := a.fs.Open(item.SourcePath)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", item.SourcePath).
			WithDetail("source", item.SourcePath)
	}
	defer func() { _ = src.Close() }()

	r, hr := a.checksummed(src)
	n, err := filesystem.WriteStream(a.fs, dest, r)
	if err != nil {
		return n, err
	}

	a.traceWrite(hr, item.SourcePath, dest, n).Msg("Copied local file")
	return n, nil
}

// Remote downloads a URL into the item's destination. Nothing is written
// unless the server answers with a 2xx status.
func (a *Acquirer) Remote(ctx context.Context, item types.TransferItem) (int64, error) {
	dest := item.DestinationPath()
	if dest == "" {
		return 0, errors.Newf(errors.ErrInvalidInput, "cannot derive a file name from %s", item.SourcePath).
			WithDetail("source", item.SourcePath)
	}

	if err := filesystem.EnsureDir(a.fs, item.DestinationDirectory); err != nil {
		return 0, err
	}

	body, err := a.fetcher.Fetch(ctx, item.SourcePath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	r, hr := a.checksummed(body)
	n, err := filesystem.WriteStream(a.fs, dest, r)
	if err != nil {
		if ctx.Err() != nil {
			return n, errors.Wrapf(ctx.Err(), errors.ErrCanceled, "download of %s canceled", item.SourcePath).
				WithDetail("source", item.SourcePath)
		}
		return n, err
	}

	a.traceWrite(hr, item.SourcePath, dest, n).Msg("Downloaded remote file")
	return n, nil
}

// checksummed hashes r only when trace events are written. The returned
// hash reader is nil otherwise.
func (a *Acquirer) checksummed(r io.Reader) (io.Reader, *hashutil.Reader) {
	if a.logger.GetLevel() > zerolog.TraceLevel || zerolog.GlobalLevel() > zerolog.TraceLevel {
		return r, nil
	}
	hr := hashutil.NewReader(r)
	return hr, hr
}

func (a *Acquirer) traceWrite(hr *hashutil.Reader, source, dest string, n int64) *zerolog.Event {
	ev := a.logger.Trace().
		Str("source", source).
		Str("destination", dest).
		Int64("bytes", n)
	if hr != nil {
		ev = ev.Str("checksum", hr.Sum())
	}
	return ev
}
