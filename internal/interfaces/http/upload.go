package http

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/mbodji/boutique-api/internal/domain"
)

// ImageSaver port d'écriture du store d'images, côté handlers.
type ImageSaver interface {
	Save(prefix, originalName string, content []byte) (string, error)
}

// Types MIME acceptés pour les images uploadées.
var allowedImageMimes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/bmp",
	"image/x-icon",
}

// Extensions correspondantes : l'extension ET le contenu doivent concorder.
var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true,
	".webp": true, ".svg": true, ".bmp": true, ".ico": true,
}

// UploadLimits plafonds de validation des uploads.
type UploadLimits struct {
	MaxFileSize int64 // octets par fichier
	MaxFiles    int   // fichiers max par requête
}

// saveUploadedImages valide puis stocke les fichiers multipart du champ donné.
// Retourne les chemins publics dans l'ordre d'envoi, ou une erreur d'upload
// typée (ErrFileTooLarge, ErrTooManyFiles, ErrUnsupportedFormat).
func saveUploadedImages(c *fiber.Ctx, field, prefix string, limits UploadLimits, store ImageSaver) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil // pas de multipart : aucune image
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > limits.MaxFiles {
		return nil, domain.ErrTooManyFiles
	}
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		content, err := readUpload(fh, limits.MaxFileSize)
		if err != nil {
			return nil, err
		}
		if !isAllowedImage(fh.Filename, content) {
			return nil, domain.ErrUnsupportedFormat
		}
		path, err := store.Save(prefix, fh.Filename, content)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// readUpload lit un fichier uploadé en mémoire en vérifiant le plafond de taille.
func readUpload(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if fh.Size > maxSize {
		return nil, domain.ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	// +1 pour détecter un Size menteur.
	content, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > maxSize {
		return nil, domain.ErrFileTooLarge
	}
	return content, nil
}

// isAllowedImage vérifie le contenu (sniffing MIME) ET l'extension du nom d'origine.
func isAllowedImage(filename string, content []byte) bool {
	if !allowedImageExts[strings.ToLower(filepath.Ext(filename))] {
		return false
	}
	detected := mimetype.Detect(content)
	for _, m := range allowedImageMimes {
		if detected.Is(m) {
			return true
		}
	}
	return false
}

// uploadErrorResponse traduit une erreur d'upload en réponse HTTP : 400 avec
// un code distinct pour chaque erreur typée, 500 pour le reste.
func uploadErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return badRequest(c, "FILE_TOO_LARGE", "Fichier trop volumineux. Taille maximum: 5MB")
	case errors.Is(err, domain.ErrTooManyFiles):
		return badRequest(c, "TOO_MANY_FILES", "Trop de fichiers. Maximum: 10 images")
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return badRequest(c, "UNSUPPORTED_FORMAT", "Format non supporté. Types acceptés: jpeg, jpg, png, gif, webp, svg, bmp, ico")
	default:
		return internalError(c)
	}
}
