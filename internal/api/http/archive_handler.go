package http

import (
	"net/http"
	"path/filepath"
	"time"

	"blueeyes-backoffice/internal/service"
)

// ArchiveHandler exposes the archival and export endpoints.
type ArchiveHandler struct {
	archiveService service.ArchiveService
	exportDir      string
}

func NewArchiveHandler(archiveService service.ArchiveService, exportDir string) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService, exportDir: exportDir}
}

func (h *ArchiveHandler) ArchiveOld(w http.ResponseWriter, r *http.Request) {
	result, err := h.archiveService.ArchiveOld(r.Context(), time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type exportResponse struct {
	Filename string `json:"filename"`
}

func (h *ArchiveHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	filename, err := h.archiveService.ExportAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Filename: filename})
}

// Download streams a previously exported spreadsheet. Only base filenames
// are accepted.
func (h *ArchiveHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" || name != filepath.Base(name) {
		writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, filepath.Join(h.exportDir, name))
}
