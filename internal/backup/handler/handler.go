package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/go-chi/chi/v5"
)

// maxRestoreBytes bounds uploaded snapshots.
const maxRestoreBytes = 256 << 20

type BackupHandler struct {
	uc     backup.UseCase
	dir    string
	logger logger.ZapLogger
}

func NewBackupHandler(uc backup.UseCase, dir string, log logger.ZapLogger) *BackupHandler {
	return &BackupHandler{uc: uc, dir: dir, logger: log}
}

// RegisterRoutes expects r to be restricted to admins already.
func (h *BackupHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stores/{storeID}/backup", h.download)
	r.Post("/stores/{storeID}/backup/file", h.backupToFile)
	r.Post("/stores/{storeID}/backup/remote", h.backupToRemote)
	r.Post("/stores/{storeID}/restore/remote", h.restoreFromRemote)
	r.Post("/restore", h.restore)
}

func (h *BackupHandler) download(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	var buf bytes.Buffer
	version, err := h.uc.BackupToLocal(r.Context(), storeID, &buf)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="backup-v%d.json"`, version))
	w.Header().Set("X-Backup-Version", strconv.Itoa(version))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *BackupHandler) backupToFile(w http.ResponseWriter, r *http.Request) {
	path, err := h.uc.BackupToFile(r.Context(), chi.URLParam(r, "storeID"), h.dir)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, map[string]string{"path": path})
}

func (h *BackupHandler) restore(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxRestoreBytes)
	if err := h.uc.RestoreFromLocal(r.Context(), body); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BackupHandler) backupToRemote(w http.ResponseWriter, r *http.Request) {
	version, err := h.uc.BackupToRemote(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, map[string]int{"version": version})
}

func (h *BackupHandler) restoreFromRemote(w http.ResponseWriter, r *http.Request) {
	version, err := h.uc.RestoreFromRemote(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]int{"version": version})
}
