package domain

// ReactionGroup — агрегат одного эмодзи на сообщении.
// Count всегда равен числу уникальных отреагировавших; отдельно не хранится.
type ReactionGroup struct {
	Emoji string
	Count int
}
