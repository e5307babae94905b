// Package domain holds the session store's value type.
package domain

import (
	ddomain "ecgdigitizer/internal/digitizer/domain"
)

// SessionBlob is the serialized per-request bundle persisted between the
// digitizer and measurement stages of an interactive session.
type SessionBlob struct {
	FileBytes  []byte
	IsPDF      bool
	Gray       [][]float64
	Overlay    *ddomain.Bitmap
	Grid       *ddomain.GridModel
	Digitized  *ddomain.Result
	Warnings   []string
	Ready      bool
}
