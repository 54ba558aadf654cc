package source

// LineInfo maps one instruction-emitting event back to its source position.
// PC is the offset of the first instruction emitted for that event.
type LineInfo struct {
	Line int32
	File FileID
	PC   int32
}

// LineTable is the append-only debug line table built alongside code
// generation and persisted at the tail of the image.
type LineTable struct {
	entries []LineInfo
}

// NewLineTable creates an empty line table.
func NewLineTable() *LineTable {
	return &LineTable{}
}

// LineTableFromEntries rebuilds a line table from persisted entries.
func LineTableFromEntries(entries []LineInfo) *LineTable {
	return &LineTable{entries: entries}
}

// Mark records that the instruction at offset pc was emitted for line/file.
func (lt *LineTable) Mark(line int32, file FileID, pc int32) {
	lt.entries = append(lt.entries, LineInfo{Line: line, File: file, PC: pc})
}

// Entries exposes the recorded mappings in emission order.
func (lt *LineTable) Entries() []LineInfo { return lt.entries }

// Len reports the number of recorded mappings.
func (lt *LineTable) Len() int { return len(lt.entries) }

// Locate returns the last entry whose PC is <= pc, which is the source
// position responsible for that instruction. Returns false for an empty
// table or a pc before the first entry.
func (lt *LineTable) Locate(pc int32) (LineInfo, bool) {
	found := LineInfo{}
	ok := false
	for _, e := range lt.entries {
		if e.PC > pc {
			break
		}
		found = e
		ok = true
	}
	return found, ok
}
