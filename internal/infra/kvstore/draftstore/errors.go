package draftstore

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик отсутствует или просрочен
	ErrDraftNotFound = errors.New("draftstore: draft not found")

	// ErrEncode возвращается при ошибке сериализации черновика
	ErrEncode = errors.New("draftstore: failed to encode draft")

	// ErrDecode возвращается при ошибке десериализации черновика
	ErrDecode = errors.New("draftstore: failed to decode draft")
)
