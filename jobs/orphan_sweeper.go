package jobs

import (
	"context"
	"log"
	"time"

	"robolibrary/models"
	"robolibrary/stores"
)

// OrphanSweeper periodically removes records stranded without an existing
// parent: content whose folder no longer resolves, and folders whose parent
// no longer resolves. Deletes are hard and not transactional across the two
// collections, so a crash mid-cascade (or a delete racing an upload) can
// strand records; the sweeper converges the store back to a consistent tree.
type OrphanSweeper struct {
	folders  stores.FolderStore
	contents stores.ContentStore
	logger   *log.Logger
}

func NewOrphanSweeper(folders stores.FolderStore, contents stores.ContentStore) *OrphanSweeper {
	return &OrphanSweeper{
		folders:  folders,
		contents: contents,
		logger:   log.New(log.Writer(), "[ORPHAN_SWEEPER] ", log.LstdFlags),
	}
}

// Start runs a sweep immediately and then on every tick until the context is
// cancelled.
func (s *OrphanSweeper) Start(ctx context.Context, interval time.Duration) {
	s.logger.Printf("starting, sweeping every %v", interval)

	s.runSweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Println("stopping")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *OrphanSweeper) runSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	removed, err := s.Sweep(sweepCtx)
	if err != nil {
		s.logger.Printf("sweep failed: %v", err)
		return
	}
	if removed > 0 {
		s.logger.Printf("removed %d orphaned records", removed)
	}
}

// Sweep deletes every content record and folder whose parent no longer
// exists, returning how many records were removed. Reclaiming a folder can
// orphan its own children, so passes repeat until one removes nothing.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int64, error) {
	var removed int64
	for {
		n, err := s.sweepOnce(ctx)
		removed += n
		if err != nil || n == 0 {
			return removed, err
		}
	}
}

func (s *OrphanSweeper) sweepOnce(ctx context.Context) (int64, error) {
	var removed int64

	refs, err := s.contents.FolderRefs(ctx)
	if err != nil {
		return removed, err
	}
	for _, folderID := range refs {
		missing, err := s.folderMissing(ctx, folderID)
		if err != nil {
			return removed, err
		}
		if !missing {
			continue
		}

		deleted, err := s.contents.DeleteByFolder(ctx, folderID)
		if err != nil {
			return removed, err
		}
		removed += deleted
	}

	parentRefs, err := s.folders.ParentRefs(ctx)
	if err != nil {
		return removed, err
	}
	for _, parentID := range parentRefs {
		missing, err := s.folderMissing(ctx, parentID)
		if err != nil {
			return removed, err
		}
		if !missing {
			continue
		}

		children, err := s.folders.ListChildren(ctx, parentID)
		if err != nil {
			return removed, err
		}
		for _, child := range children {
			deleted, err := s.contents.DeleteByFolder(ctx, child.ID.Hex())
			if err != nil {
				return removed, err
			}
			removed += deleted

			if err := s.folders.Delete(ctx, child.ID.Hex()); err != nil {
				if models.IsNotFound(err) {
					continue
				}
				return removed, err
			}
			removed++
		}
	}

	return removed, nil
}

func (s *OrphanSweeper) folderMissing(ctx context.Context, id string) (bool, error) {
	_, err := s.folders.Get(ctx, id)
	if err == nil {
		return false, nil
	}
	if models.IsNotFound(err) {
		return true, nil
	}
	return false, err
}
