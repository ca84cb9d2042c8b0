package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/library"
)

// FolderHandler handles folder and folder membership requests
type FolderHandler struct {
	lib    *library.Library
	logger *slog.Logger
}

// NewFolderHandler creates a new FolderHandler
func NewFolderHandler(lib *library.Library, logger *slog.Logger) *FolderHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FolderHandler")
	}
	return &FolderHandler{
		lib:    lib,
		logger: logger.With(slog.String("component", "folder_handler")),
	}
}

// List handles GET /api/folders
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folders := h.lib.Folders()
	resp := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		resp = append(resp, h.response(f))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	folder, err := h.lib.AddFolder(library.NewFolder{Name: req.Name, Comment: req.Comment})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, h.response(folder))
}

// Get handles GET /api/folders/{id}
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.lookup(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(folder))
}

// Delete handles DELETE /api/folders/{id}. Wordlists in the folder are kept.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.lib.DeleteFolder(folder.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Wordlists handles GET /api/folders/{id}/wordlists
func (h *FolderHandler) Wordlists(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	wordlists, ok := h.lib.FolderWordlistsOf(id)
	if !ok {
		HandleAPIError(w, r, ErrFolderNotFound)
		return
	}
	resp := make([]WordlistResponse, 0, len(wordlists))
	for _, wl := range wordlists {
		resp = append(resp, WordlistResponse{Wordlist: wl, CardCount: h.lib.MembershipCount(wl.ID)})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// AddWordlist handles PUT /api/folders/{id}/wordlists/{wordlistID}
func (h *FolderHandler) AddWordlist(w http.ResponseWriter, r *http.Request) {
	folder, wordlistID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}
	if err := h.lib.AddWordlistToFolder(folder.ID, wordlistID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveWordlist handles DELETE /api/folders/{id}/wordlists/{wordlistID}
func (h *FolderHandler) RemoveWordlist(w http.ResponseWriter, r *http.Request) {
	folder, wordlistID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}
	h.lib.RemoveWordlistFromFolder(folder.ID, wordlistID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *FolderHandler) membershipParams(w http.ResponseWriter, r *http.Request) (domain.Folder, string, bool) {
	folder, ok := h.lookup(w, r)
	if !ok {
		return domain.Folder{}, "", false
	}
	wordlistID, err := pathParam(r, "wordlistID")
	if err != nil {
		HandleAPIError(w, r, err)
		return domain.Folder{}, "", false
	}
	if _, ok := h.lib.GetWordlist(wordlistID); !ok {
		HandleAPIError(w, r, ErrWordlistNotFound)
		return domain.Folder{}, "", false
	}
	return folder, wordlistID, true
}

func (h *FolderHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.Folder, bool) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return domain.Folder{}, false
	}
	folder, ok := h.lib.GetFolder(id)
	if !ok {
		HandleAPIError(w, r, ErrFolderNotFound)
		return domain.Folder{}, false
	}
	return folder, true
}

func (h *FolderHandler) response(folder domain.Folder) FolderResponse {
	wordlists, _ := h.lib.FolderWordlistsOf(folder.ID)
	ids := make([]string, 0, len(wordlists))
	for _, wl := range wordlists {
		ids = append(ids, wl.ID)
	}
	return FolderResponse{Folder: folder, WordlistIDs: ids}
}
