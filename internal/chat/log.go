package chat

// Log 仅追加的会话记录。消息一旦追加不再修改或删除。
// Log is the append-only conversation record. Once appended, a message is never
// mutated or removed.
type Log struct {
	messages []Message
}

// NewLog 创建空会话记录
// NewLog creates an empty conversation log
func NewLog() *Log {
	return &Log{}
}

// Append 追加一条消息
// Append adds a message to the end of the log
func (l *Log) Append(msg Message) {
	// 片段做防御性拷贝，调用方无法再改写已入库的消息
	// Parts are copied so callers cannot mutate a logged message afterwards
	msg.Parts = append([]string(nil), msg.Parts...)
	l.messages = append(l.messages, msg)
}

// Messages 返回消息快照（append 顺序）
// Messages returns a snapshot of all messages in append order
func (l *Log) Messages() []Message {
	return append([]Message(nil), l.messages...)
}

// Len 返回消息数量
// Len returns the number of messages
func (l *Log) Len() int {
	return len(l.messages)
}

// Last 返回最后一条消息；日志为空时 ok 为 false
// Last returns the most recent message; ok is false when the log is empty
func (l *Log) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}
