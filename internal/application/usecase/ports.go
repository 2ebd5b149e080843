package usecase

// FileStore port de suppression de fichiers uploadés. La décision de supprimer
// appartient aux cas d'usage catalogue ; le store n'a ni GC ni comptage de
// références, et ignore les sentinelles par défaut.
type FileStore interface {
	Delete(path string) error
}
