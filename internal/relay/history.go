package relay

// DefaultHistory is the number of messages a relay remembers.
const DefaultHistory = 10

// History is a fixed-capacity ring buffer of messages. When full, the
// oldest message is evicted.
type History struct {
	entries []string
	head    int
	count   int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{entries: make([]string, capacity)}
}

// Push appends msg, evicting the oldest entry when full.
func (h *History) Push(msg string) {
	h.entries[h.head] = msg
	h.head = (h.head + 1) % len(h.entries)
	if h.count < len(h.entries) {
		h.count++
	}
}

func (h *History) Len() int { return h.count }

func (h *History) Cap() int { return len(h.entries) }

// At returns the i-th retained message, oldest first.
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= h.count {
		return "", false
	}
	idx := (h.head - h.count + i + len(h.entries)) % len(h.entries)
	return h.entries[idx], true
}

// Back returns the message n pushes ago; Back(1) is the newest.
func (h *History) Back(n int) (string, bool) {
	return h.At(h.count - n)
}

// Recent returns retained messages in chronological order (oldest first).
func (h *History) Recent() []string {
	out := make([]string, h.count)
	for i := range out {
		out[i], _ = h.At(i)
	}
	return out
}
