package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound           = errors.New("ressource non trouvée")
	ErrUserNotFound       = errors.New("utilisateur non trouvé")
	ErrCategoryNotFound   = errors.New("catégorie non trouvée")
	ErrProductNotFound    = errors.New("produit non trouvé")
	ErrEmailAlreadyExists = errors.New("email déjà utilisé")
	ErrInvalidInput       = errors.New("entrée invalide")
	ErrDuplicate          = errors.New("ressource dupliquée")
	ErrUnauthorized       = errors.New("non autorisé")
	ErrForbidden          = errors.New("accès interdit")
)

// Erreurs d'upload, distinguables des échecs génériques pour des réponses 400 ciblées.
var (
	ErrFileTooLarge      = errors.New("fichier trop volumineux")
	ErrTooManyFiles      = errors.New("trop de fichiers")
	ErrUnsupportedFormat = errors.New("format de fichier non supporté")
)
