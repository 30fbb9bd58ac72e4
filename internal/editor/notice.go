package editor

import (
	"fmt"
	"time"
)

// DefaultNoticeTTL is how long a toast stays visible.
const DefaultNoticeTTL = 3 * time.Second

// Notice is a transient confirmation shown after an editor action.
type Notice struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

const (
	msgSubmitted     = "Data berhasil di-submit dan disimpan!"
	msgRevised       = "Data berhasil ditarik untuk revisi."
	msgNoSnapshot    = "Tidak ada data tersimpan untuk direvisi."
	msgReviseFailed  = "Gagal memuat data revisi."
	msgAddedFormat   = "Murid %q berhasil ditambahkan."
	msgDeletedFormat = "Murid %q berhasil dihapus."
)

func addedMessage(name string) string   { return fmt.Sprintf(msgAddedFormat, name) }
func deletedMessage(name string) string { return fmt.Sprintf(msgDeletedFormat, name) }

// Notifier receives editor events for fan-out to connected clients.
type Notifier interface {
	NoticePosted(subject string, n Notice)
	RosterCommitted(subject string)
}

type nopNotifier struct{}

func (nopNotifier) NoticePosted(string, Notice) {}
func (nopNotifier) RosterCommitted(string)      {}
