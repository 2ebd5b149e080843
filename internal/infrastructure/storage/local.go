package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mbodji/boutique-api/internal/domain/entity"
)

// LocalStore stocke les images uploadées dans un répertoire plat et les
// référence par un chemin URL monté en statique (ex: /uploads/<nom>).
// Aucun GC, aucun comptage de références : la suppression est pilotée par
// l'appelant (cas d'usage catalogue).
type LocalStore struct {
	dir        string
	publicPath string // préfixe URL, ex: /uploads
}

// NewLocalStore crée le répertoire de stockage s'il n'existe pas.
func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("créer le répertoire d'upload: %w", err)
	}
	return &LocalStore{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}, nil
}

// Dir retourne le répertoire de stockage sur disque (pour le montage statique).
func (s *LocalStore) Dir() string { return s.dir }

// Save écrit le contenu sous un nom anti-collision
// "<prefix>-<unixnano>-<aléatoire><ext>" et retourne le chemin public.
func (s *LocalStore) Save(prefix, originalName string, content []byte) (string, error) {
	name := generateName(prefix, originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("écrire le fichier: %w", err)
	}
	return s.publicPath + "/" + name, nil
}

// Delete supprime un fichier précédemment stocké, identifié par son chemin
// public. Les sentinelles par défaut et les chemins hors montage sont ignorés.
func (s *LocalStore) Delete(path string) error {
	if entity.IsDefaultImage(path) || path == entity.DefaultCategoryImage || path == "/"+entity.DefaultCategoryImage {
		return nil
	}
	name := strings.TrimPrefix(path, s.publicPath+"/")
	// Jamais de traversée hors du répertoire de stockage.
	name = filepath.Base(name)
	if name == "" || name == "." {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("supprimer le fichier: %w", err)
	}
	return nil
}

// generateName produit un nom anti-collision : horodatage + suffixe aléatoire
// + extension d'origine.
func generateName(prefix, originalName string) string {
	var buf [6]byte
	_, _ = rand.Read(buf[:])
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixNano(), hex.EncodeToString(buf[:]), ext)
}
