package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

// AttachmentManager uploads blobs to object storage, persists their metadata
// records, de-duplicates by URL within a task, and removes both halves on
// deletion.
type AttachmentManager struct {
	store  ports.RemoteStore
	engine *SyncEngine
	now    func() time.Time
}

func NewAttachmentManager(store ports.RemoteStore, engine *SyncEngine) *AttachmentManager {
	return &AttachmentManager{store: store, engine: engine, now: time.Now}
}

var _ ports.AttachmentManager = (*AttachmentManager)(nil)

// Upload transfers the blob and returns the attachment value with its
// storage path as id and a publicly resolvable URL. No metadata record is
// written; callers must not record anything if this fails.
func (m *AttachmentManager) Upload(ctx context.Context, file domain.FileUpload, userID string) (domain.Attachment, error) {
	key := storageKey(m.now(), file.Name)
	objectPath := userID + "/" + key

	url, err := m.store.UploadObject(ctx, objectPath, file)
	if err != nil {
		return domain.Attachment{}, &domain.UploadError{Name: file.Name, Err: err}
	}

	return domain.Attachment{
		ID:   objectPath,
		Name: file.Name,
		Type: file.ContentType,
		URL:  url,
		Size: file.Size,
	}, nil
}

// Attach persists the metadata record tying an uploaded attachment to its
// task. Call only after Upload succeeded.
func (m *AttachmentManager) Attach(ctx context.Context, taskID, userID string, att domain.Attachment) error {
	return m.store.InsertAttachment(ctx, taskID, userID, att)
}

// UploadAll uploads the files concurrently, drops any result whose URL the
// task already carries, then persists each unique result individually.
// There is no batch atomicity: attachments persisted before a failure stay
// attached, and the partial result is returned alongside the error.
func (m *AttachmentManager) UploadAll(ctx context.Context, taskID, userID string, files []domain.FileUpload) ([]domain.Attachment, error) {
	existing, err := m.engine.TaskAttachments(taskID)
	if err != nil {
		return nil, err
	}

	uploaded := make([]domain.Attachment, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f domain.FileUpload) {
			defer wg.Done()
			uploaded[i], errs[i] = m.Upload(ctx, f, userID)
		}(i, f)
	}
	wg.Wait()

	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		seen[a.URL] = struct{}{}
	}

	var attached []domain.Attachment
	var firstErr error
	for i := range files {
		if errs[i] != nil {
			zap.L().Warn("attachment upload failed",
				zap.String("task_id", taskID),
				zap.String("file", files[i].Name),
				zap.Error(errs[i]))
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		att := uploaded[i]
		if _, dup := seen[att.URL]; dup {
			continue
		}
		seen[att.URL] = struct{}{}

		if err := m.Attach(ctx, taskID, userID, att); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("attach %s: %w", att.Name, err)
			}
			continue
		}
		attached = append(attached, att)
	}

	if len(attached) > 0 {
		if err := m.engine.AddAttachments(ctx, taskID, attached); err != nil {
			return attached, err
		}
	}
	return attached, firstErr
}

// Delete removes the metadata record first, then the blob. If the metadata
// delete fails nothing else is attempted and local state is untouched. If
// only the blob delete fails the local entry is still removed; an orphaned
// blob is acceptable, an orphaned metadata record is not.
func (m *AttachmentManager) Delete(ctx context.Context, taskID, attachmentID, url string) error {
	if err := m.store.DeleteAttachment(ctx, attachmentID); err != nil {
		return &domain.AttachmentDeleteError{ID: attachmentID, Err: err}
	}

	var blobErr error
	if objectPath := ObjectPathFromURL(url); objectPath != "" {
		if err := m.store.DeleteObject(ctx, objectPath); err != nil {
			zap.L().Warn("attachment blob left orphaned",
				zap.String("attachment_id", attachmentID),
				zap.Error(err))
			blobErr = &domain.AttachmentDeleteError{ID: attachmentID, MetadataDeleted: true, Err: err}
		}
	}

	if err := m.engine.RemoveAttachment(ctx, taskID, attachmentID); err != nil {
		return err
	}
	return blobErr
}

// storageKey builds a collision-resistant object name: upload time, random
// suffix, original extension.
func storageKey(now time.Time, filename string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	ext := path.Ext(filename)
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), suffix, ext)
}

// ObjectPathFromURL derives the storage path from a public URL of the form
// .../object/public/<bucket>/<path>.
func ObjectPathFromURL(url string) string {
	const marker = "/object/public/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	rest := url[i+len(marker):]
	// Strip the bucket segment.
	if j := strings.Index(rest, "/"); j >= 0 {
		return rest[j+1:]
	}
	return ""
}
