package snippet

// Store 会话内的有序片段集合，连同每个片段的下载选择标记。
// 片段只增不删，顺序即创建顺序。
// Store is the session's ordered snippet collection plus per-snippet download
// selection flags. Snippets are append-only; order is creation order.
type Store struct {
	snippets []Snippet
	index    map[string]int
	selected map[string]bool
	// selLog 记录被勾选的先后次序，用于 CorrectionSubject 的"最近选中"判定
	// selLog records the order in which ids were selected; CorrectionSubject
	// uses it to find the most recently selected snippet
	selLog []string
}

// NewStore 创建空的片段集合
// NewStore creates an empty snippet store
func NewStore() *Store {
	return &Store{
		index:    make(map[string]int),
		selected: make(map[string]bool),
	}
}

// Append 追加片段并返回其 ID。ID 为空时自动生成；新片段默认勾选。
// Append inserts a snippet at the end and returns its ID. A fresh ID is
// generated when absent; new snippets are auto-selected.
func (s *Store) Append(sn Snippet) string {
	if sn.ID == "" {
		sn.ID = NewID()
	}
	s.index[sn.ID] = len(s.snippets)
	s.snippets = append(s.snippets, sn)
	s.markSelected(sn.ID, true)
	return sn.ID
}

// SetSelected 设置选择标记。未知 ID 时为 no-op，重复设置幂等。
// SetSelected sets the selection flag. Unknown ids are a no-op; repeated calls
// are idempotent.
func (s *Store) SetSelected(id string, sel bool) {
	if _, ok := s.index[id]; !ok {
		return
	}
	s.markSelected(id, sel)
}

func (s *Store) markSelected(id string, sel bool) {
	s.selected[id] = sel
	if sel {
		s.selLog = append(s.selLog, id)
	}
}

// IsSelected 返回片段当前是否被勾选
// IsSelected reports whether the snippet is currently selected
func (s *Store) IsSelected(id string) bool {
	return s.selected[id]
}

// Get 按 ID 查找片段
// Get looks up a snippet by ID
func (s *Store) Get(id string) (Snippet, bool) {
	i, ok := s.index[id]
	if !ok {
		return Snippet{}, false
	}
	return s.snippets[i], true
}

// All 返回全部片段快照（创建顺序）
// All returns a snapshot of every snippet in creation order
func (s *Store) All() []Snippet {
	return append([]Snippet(nil), s.snippets...)
}

// Len 返回片段数量
// Len returns the snippet count
func (s *Store) Len() int {
	return len(s.snippets)
}

// Selected 返回当前勾选的片段，保持创建顺序。
// 仅存在于集合中的 ID 才计入；陈旧标记被忽略。
// Selected returns the currently selected snippets in creation order. Only ids
// present in the store count; stale flags are ignored.
func (s *Store) Selected() []Snippet {
	out := make([]Snippet, 0, len(s.snippets))
	for _, sn := range s.snippets {
		if s.selected[sn.ID] {
			out = append(out, sn)
		}
	}
	return out
}

// CorrectionSubject 选出纠错对话应引用的片段：
// (a) 最近一次被勾选且仍处于勾选状态的片段，
// (b) 否则最近追加的片段，
// (c) 否则没有主题。该回退次序决定模型修改哪段代码，需严格保持。
// CorrectionSubject picks the snippet a correction turn should reference:
// (a) the most recently selected snippet that is still selected, falling back
// to (b) the most recently appended snippet, falling back to (c) none. The
// order determines which code the model is asked to revise and is kept exact.
func (s *Store) CorrectionSubject() (Snippet, bool) {
	for i := len(s.selLog) - 1; i >= 0; i-- {
		id := s.selLog[i]
		if !s.selected[id] {
			continue
		}
		if idx, ok := s.index[id]; ok {
			return s.snippets[idx], true
		}
	}
	if n := len(s.snippets); n > 0 {
		return s.snippets[n-1], true
	}
	return Snippet{}, false
}
