// Package snippet holds the session's code snippets and their selection state.
package snippet

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snippet 一段带元数据的代码。创建后不可变，选择状态由 Store 单独维护。
// Snippet is a named unit of code text. Immutable once created; selection
// state lives in the Store, keyed by ID.
type Snippet struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Language    string `json:"language"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
}

// NewID 生成新的片段 ID：时间戳前缀便于肉眼排序，uuid 保证唯一
// NewID generates a new snippet ID: the timestamp prefix keeps ids humanly
// sortable, the uuid suffix guarantees uniqueness
func NewID() string {
	return fmt.Sprintf("code_%d_%s", time.Now().UTC().UnixNano(), uuid.NewString())
}
