package engage

import (
	"fmt"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// HasAlreadyEngaged reports whether one of the recent reshares embeds the
// candidate as its original post.
func HasAlreadyEngaged(sink domain.Sink, recent []*domain.Post, candidate *domain.Post) bool {
	sink.Emit(fmt.Sprintf("checking whether post %s has already been reshared ...", candidate.ID()))

	for _, p := range recent {
		if id, ok := p.OriginalID(); ok && id == candidate.ID() {
			sink.Emit(fmt.Sprintf("post %s has already been reshared", candidate.ID()))
			return true
		}
	}

	sink.Emit(fmt.Sprintf("post %s has not been reshared", candidate.ID()))
	return false
}
