package documents

import "sync"

// Repo keeps each user's current document in memory. Documents live only
// for the duration of the session, so no durable backing is needed.
type Repo struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewRepo creates an empty document repo.
func NewRepo() *Repo {
	return &Repo{docs: make(map[string]Document)}
}

// Current returns the user's document.
func (r *Repo) Current(userID string) (Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[userID]
	return doc, ok
}

// Replace stores the document as the user's current one and returns the
// previous document, if any.
func (r *Repo) Replace(doc Document) (Document, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, had := r.docs[doc.UserID]
	r.docs[doc.UserID] = doc
	return prev, had
}
