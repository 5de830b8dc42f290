package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyUID        = "uid"
	KeyTarget     = "target"
	KeyDocuments  = "documents"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func UID(uid string) slog.Attr        { return slog.String(KeyUID, uid) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Documents(n int) slog.Attr       { return slog.Int(KeyDocuments, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
