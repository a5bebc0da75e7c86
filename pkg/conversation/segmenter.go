// Package conversation segments a linear chat history into question
// blocks. A block is a maximal run of user/assistant messages; a
// separator message closes the block it follows and belongs to no
// block itself.
package conversation

import "shiksha-saathi-be/internal/entity"

// Block is one question's worth of conversation, oldest first.
type Block []entity.ChatMessage

// Segment splits history (oldest first) into blocks at separator
// messages. Separators are dropped, empty blocks (from leading or
// consecutive separators) are not emitted, and a trailing open block
// is included.
func Segment(history []entity.ChatMessage) []Block {
	var blocks []Block
	var current Block
	for _, msg := range history {
		if msg.IsSeparator() {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, msg)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// Flatten concatenates blocks back into a single message slice,
// preserving order. Segment then Flatten loses only the separators.
func Flatten(blocks []Block) []entity.ChatMessage {
	var out []entity.ChatMessage
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// CurrentBlock returns the messages after the last separator, i.e. the
// question the student is working on now. Empty when the history is
// empty or ends in a separator.
func CurrentBlock(history []entity.ChatMessage) Block {
	start := 0
	for i, msg := range history {
		if msg.IsSeparator() {
			start = i + 1
		}
	}
	return Block(history[start:])
}

// IsNewBlock reports whether the next user message starts a fresh
// question: true only when the most recent stored message is a
// separator. An empty history is a continuation of nothing, not a new
// block.
func IsNewBlock(history []entity.ChatMessage) bool {
	if len(history) == 0 {
		return false
	}
	return history[len(history)-1].IsSeparator()
}

// UserContents extracts the user-authored contents of a block, in
// order. Used to build the previous_questions context for follow-ups.
func UserContents(b Block) []string {
	var out []string
	for _, msg := range b {
		if msg.Role == entity.RoleUser {
			out = append(out, msg.Content)
		}
	}
	return out
}
