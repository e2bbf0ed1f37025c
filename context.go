package kwic

import "unicode/utf8"

// Context is one occurrence of a query shown inside its record.
type Context struct {
	Record  int
	// Offset is the byte offset of the keyword within the record as indexed.
	// With case folding or normalization enabled that is the transformed
	// record returned by IndexedRecord, not Record.
	Offset  int
	Left    string
	Keyword string
	Right   string
}

// Contexts returns every occurrence of query with up to width bytes of its
// record on either side, in the same order as Find. The text shown is the
// record after case folding and normalization, if those are enabled. Cuts
// never split a UTF-8 sequence, so a side may be a few bytes shorter.
func (k *KWIC) Contexts(query string, width int) ([]Context, error) {
	q, err := k.prepareQuery(query)
	if err != nil {
		return nil, err
	}
	width = max(width, 0)

	matches := k.index.QueryString(q)
	out := make([]Context, len(matches))
	for i, off := range matches {
		start, id, _ := k.offsets.Floor(off)
		record := k.transformed[id]
		rel := off - start
		end := min(rel+len(q), len(record))

		left := rel - width
		for left > 0 && left < rel && !utf8.RuneStart(record[left]) {
			left++
		}
		left = max(left, 0)
		right := min(end+width, len(record))
		for right < len(record) && right > end && !utf8.RuneStart(record[right]) {
			right--
		}

		out[i] = Context{
			Record:  id,
			Offset:  rel,
			Left:    record[left:rel],
			Keyword: record[rel:end],
			Right:   record[end:right],
		}
	}
	return out, nil
}

// String renders the context on one line with the keyword in brackets.
func (c Context) String() string {
	return c.Left + "[" + c.Keyword + "]" + c.Right
}

// IndexedRecord returns record id after case folding and normalization, the
// text that Contexts offsets refer to.
func (k *KWIC) IndexedRecord(id int) string {
	return k.transformed[id]
}
