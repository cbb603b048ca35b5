package desk

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// TransferKind distinguishes simulated uploads from downloads.
type TransferKind string

const (
	TransferUpload   TransferKind = "upload"
	TransferDownload TransferKind = "download"
)

// TransferStatus is the explicit lifecycle of a simulated transfer.
type TransferStatus string

const (
	TransferPending     TransferStatus = "pending"
	TransferProgressing TransferStatus = "progressing"
	TransferComplete    TransferStatus = "complete"
)

// Transfer is a cooperative progress simulation: no bytes move, a
// scheduler tick advances the percentage, and completion performs the
// real state change (item creation for uploads, nothing beyond the
// busy flag for downloads). Once started a transfer runs to completion;
// there is no cancel.
type Transfer struct {
	ID        string         `json:"id"`
	Kind      TransferKind   `json:"kind"`
	Name      string         `json:"name"`
	Size      int64          `json:"size"`
	Status    TransferStatus `json:"status"`
	Percent   int            `json:"percent"`
	ItemID    string         `json:"item_id,omitempty"`
	StartedAt time.Time      `json:"started_at"`

	parentID string
	itemKind Kind
	content  string
}

func (t *Transfer) clone() *Transfer {
	cp := *t
	return &cp
}

// StartUpload validates the destination and enqueues a simulated
// upload. The item is created only when the transfer completes.
func (s *Service) StartUpload(user *User, parentID, name string, kind Kind, size int64, content string) (*Transfer, error) {
	s.mu.Lock()
	if err := s.validDestination(user, parentID, "upload"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if kind == "" || kind == KindFolder {
		kind = KindUnknown
	}
	tr := &Transfer{
		ID:        s.idgen.New(),
		Kind:      TransferUpload,
		Name:      name,
		Size:      size,
		Status:    TransferPending,
		StartedAt: s.clock.Now(),
		parentID:  parentID,
		itemKind:  kind,
		content:   content,
	}
	s.transfers = append(s.transfers, tr)
	s.logger.Info("upload started", "name", name, "size", humanize.Bytes(uint64(size)))
	s.mu.Unlock()
	return tr.clone(), nil
}

// StartDownload validates access and enqueues a simulated download. A
// download is pure theater: the only observable state change is the
// transfer record itself.
func (s *Service) StartDownload(user *User, itemID string) (*Transfer, error) {
	s.mu.Lock()
	it := s.items.ByID(itemID)
	if it == nil {
		err := s.reject("download", fmt.Errorf("%s: %w", itemID, ErrNotFound))
		s.mu.Unlock()
		return nil, err
	}
	if err := s.gate(user, it, "download"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	tr := &Transfer{
		ID:        s.idgen.New(),
		Kind:      TransferDownload,
		Name:      it.Name,
		Size:      it.Size,
		Status:    TransferPending,
		ItemID:    itemID,
		StartedAt: s.clock.Now(),
	}
	s.transfers = append(s.transfers, tr)
	s.logger.Info("download started", "name", it.Name)
	s.mu.Unlock()
	return tr.clone(), nil
}

// Transfers returns copies of all transfer records, active and done.
func (s *Service) Transfers() []*Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Transfer, len(s.transfers))
	for i, t := range s.transfers {
		out[i] = t.clone()
	}
	return out
}

// TickTransfers advances every active transfer by step percent. Pending
// transfers start progressing on their first tick; transfers reaching
// 100 complete, and a completing upload performs its item creation.
// The serve loop calls this from a timer; tests call it directly.
func (s *Service) TickTransfers(step int) {
	if step <= 0 {
		return
	}
	s.mu.Lock()
	var changed []uint64
	for _, tr := range s.transfers {
		switch tr.Status {
		case TransferComplete:
			continue
		case TransferPending:
			tr.Status = TransferProgressing
		}
		tr.Percent += step
		if tr.Percent < 100 {
			continue
		}
		tr.Percent = 100
		tr.Status = TransferComplete
		switch tr.Kind {
		case TransferUpload:
			changed = append(changed, s.completeUploadLocked(tr))
		case TransferDownload:
			s.logger.Info("download complete", "name", tr.Name)
			s.notifier.Notify(Notification{
				Level:   LevelInfo,
				Message: fmt.Sprintf("Downloaded %q", tr.Name),
				At:      s.clock.Now(),
			})
		}
	}
	s.mu.Unlock()
	for _, v := range changed {
		s.stateChanged(v)
	}
}

// completeUploadLocked performs the deferred item creation for a
// finished upload. If the destination vanished or was trashed while the
// transfer ran, the file lands on the desktop root instead.
func (s *Service) completeUploadLocked(tr *Transfer) uint64 {
	parentID := tr.parentID
	if parentID != RootID {
		parent := s.items.ByID(parentID)
		if parent == nil || !parent.IsFolder() || s.items.InTrash(parentID) {
			parentID = RootID
		}
	}
	now := s.clock.Now()
	item := &Item{
		ID:         s.idgen.New(),
		ParentID:   parentID,
		Name:       uniqueSiblingName(s.items.Children(parentID), tr.Name, false),
		Kind:       tr.itemKind,
		Size:       tr.Size,
		Content:    tr.content,
		Order:      s.items.MaxOrder(parentID) + 1,
		VisibleTo:  AllRoles(),
		CreatedAt:  now,
		ModifiedAt: now,
	}
	tr.ItemID = item.ID

	v := s.commit(&CreateAction{
		Item: item,
		Desc: fmt.Sprintf("Uploaded %q", item.Name),
		At:   now,
	})
	s.logger.Info("upload complete", "name", item.Name, "size", humanize.Bytes(uint64(item.Size)))
	return v
}
