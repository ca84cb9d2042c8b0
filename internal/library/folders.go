package library

import (
	"fmt"
	"strings"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/events"
)

// NewFolder is the caller-supplied part of a folder.
type NewFolder struct {
	Name    string
	Comment string
}

// AddFolder creates a folder, failing once the library holds
// domain.MaxFoldersPerUser of them.
func (l *Library) AddFolder(in NewFolder) (domain.Folder, error) {
	var folder domain.Folder
	err := l.mutate(func() (*events.LibraryEvent, error) {
		if len(l.folders) >= domain.MaxFoldersPerUser {
			return nil, domain.NewCapacityError(
				"folder",
				domain.MaxFoldersPerUser,
				fmt.Sprintf("folder cap reached (%d)", domain.MaxFoldersPerUser),
			)
		}
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate folder id: %w", err)
		}
		now := l.createdStamp()
		folder = domain.Folder{
			ID:        id,
			Name:      strings.TrimSpace(in.Name),
			Comment:   in.Comment,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: l.userID,
		}
		if err := folder.Validate(); err != nil {
			return nil, err
		}
		if _, exists := l.folders[id]; exists {
			return nil, fmt.Errorf("duplicate folder id %q", id)
		}
		l.folders[id] = folder
		l.folderIDs = append(l.folderIDs, id)
		return l.event(events.FolderAdded, id, ""), nil
	})
	if err != nil {
		return domain.Folder{}, err
	}
	return folder, nil
}

// DeleteFolder removes a folder and its memberships. Member wordlists are
// left in place.
func (l *Library) DeleteFolder(id string) {
	_ = l.mutate(func() (*events.LibraryEvent, error) {
		if _, ok := l.folders[id]; !ok {
			return nil, nil
		}
		delete(l.folders, id)
		l.folderIDs = removeID(l.folderIDs, id)
		l.folderWordlists.removeParent(id)
		return l.event(events.FolderDeleted, id, ""), nil
	})
}

// AddWordlistToFolder links a wordlist into a folder. As with
// AddFlashcardToWordlist the cap is checked first and unknown ids or an
// existing pair are no-ops.
func (l *Library) AddWordlistToFolder(folderID, wordlistID string) error {
	return l.mutate(func() (*events.LibraryEvent, error) {
		if _, ok := l.folders[folderID]; !ok {
			return nil, nil
		}
		if _, ok := l.wordlists[wordlistID]; !ok {
			return nil, nil
		}
		if l.folderWordlists.count(folderID) >= domain.MaxWordlistsPerFolder {
			return nil, domain.NewCapacityError(
				"folder_wordlist",
				domain.MaxWordlistsPerFolder,
				fmt.Sprintf("this folder already has %d wordlists", domain.MaxWordlistsPerFolder),
			)
		}
		if l.folderWordlists.has(folderID, wordlistID) {
			return nil, nil
		}
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate membership id: %w", err)
		}
		l.folderWordlists.add(domain.FolderWordlist{
			ID:         id,
			FolderID:   folderID,
			WordlistID: wordlistID,
			CreatedAt:  l.nowFn(),
		})
		return l.event(events.FolderWordlistAdded, folderID, wordlistID), nil
	})
}

// RemoveWordlistFromFolder unlinks a wordlist from a folder.
func (l *Library) RemoveWordlistFromFolder(folderID, wordlistID string) {
	_ = l.mutate(func() (*events.LibraryEvent, error) {
		if !l.folderWordlists.remove(folderID, wordlistID) {
			return nil, nil
		}
		return l.event(events.FolderWordlistRemoved, folderID, wordlistID), nil
	})
}
