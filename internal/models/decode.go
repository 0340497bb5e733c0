package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

var ErrMalformedJSON = errors.New("malformed JSON")

// ParseValidationResult decodes a service response. It is lenient about field types:
// the contract itself is checked separately, before decoding.
func ParseValidationResult(body []byte) (ValidationResult, error) {
	if !gjson.ValidBytes(body) {
		return ValidationResult{}, ErrMalformedJSON
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return ValidationResult{}, errors.New("validation result must be a JSON object")
	}

	var res ValidationResult
	res.ExtractedText = member(root, "extracted_text").String()
	res.PersonName = member(root, "person_name").String()
	res.Component = decodeComponent(member(root, "component"))
	res.SegmentedSections = decodeSegmented(member(root, "segmented_sections"))
	return res, nil
}

func (v *ValidationResult) UnmarshalJSON(b []byte) error {
	res, err := ParseValidationResult(b)
	if err != nil {
		return err
	}
	*v = res
	return nil
}

// ParseRecord decodes a JSON object into a Record. null decodes to an empty Record.
func ParseRecord(b []byte) (Record, error) {
	if !gjson.ValidBytes(b) {
		return Record{}, ErrMalformedJSON
	}
	obj := gjson.ParseBytes(b)
	if obj.Type == gjson.Null {
		return Record{}, nil
	}
	if !obj.IsObject() {
		return Record{}, errors.New("record must be a JSON object")
	}
	return decodeRecord(obj), nil
}

// member returns the last occurrence of key in obj, matching JSON.parse semantics.
func member(obj gjson.Result, key string) gjson.Result {
	var out gjson.Result
	if !obj.IsObject() {
		return out
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out = v
		}
		return true
	})
	return out
}

func decodeComponent(c gjson.Result) StructuredContent {
	var out StructuredContent
	if !c.IsObject() {
		return out
	}
	meta := member(c, "metadata")
	if meta.IsObject() {
		out.Metadata.TotalLength = member(meta, "total_length").Int()
		out.Metadata.SectionCount = member(meta, "section_count").Int()
		if info := member(meta, "additional_info"); info.IsObject() {
			out.Metadata.AdditionalInfo = decodeRecord(info)
		}
	}
	if secs := member(c, "sections"); secs.IsArray() {
		for _, s := range secs.Array() {
			out.Sections = append(out.Sections, DocumentSection{
				Title:   member(s, "title").String(),
				Content: member(s, "content").String(),
			})
		}
	}
	return out
}

// decodeSegmented accepts the documented {content: [...]} container and, leniently,
// a bare array of sections.
func decodeSegmented(s gjson.Result) SegmentedSections {
	var list gjson.Result
	switch {
	case s.IsArray():
		list = s
	case s.IsObject():
		list = member(s, "content")
	}
	out := SegmentedSections{Content: []PolicySection{}}
	if !list.IsArray() {
		return out
	}
	for _, el := range list.Array() {
		if el.IsObject() {
			out.Content = append(out.Content, decodeRecord(el))
			continue
		}
		out.Content = append(out.Content, Record{})
	}
	return out
}

func decodeRecord(obj gjson.Result) Record {
	var r Record
	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		r.Set(key, decodeValue(key, v))
		return true
	})
	return r
}

func decodeValue(key string, v gjson.Result) Value {
	switch v.Type {
	case gjson.Null:
		return Null()
	case gjson.String:
		return String(v.Str)
	case gjson.Number:
		return Value{Kind: KindScalar, Text: numberText(v), raw: v.Raw}
	case gjson.True, gjson.False:
		return Value{Kind: KindScalar, Text: v.Raw, raw: v.Raw}
	}
	if v.IsArray() {
		elems := v.Array()
		if key == KeyPersonByPolicy {
			people := make([]PersonRecord, 0, len(elems))
			for _, e := range elems {
				people = append(people, decodePerson(e))
			}
			return People(people...)
		}
		items := make([]string, 0, len(elems))
		for _, e := range elems {
			items = append(items, elementText(e))
		}
		return List(items...)
	}
	raw := compact(v.Raw)
	return Value{Kind: KindScalar, Text: raw, raw: raw}
}

func decodePerson(e gjson.Result) PersonRecord {
	if !e.IsObject() {
		return PersonRecord{}
	}
	return PersonRecord{
		FullName:          member(e, "full_name").String(),
		DocumentNumber:    member(e, "document_number").String(),
		CoverageStartDate: member(e, "coverage_start_date").String(),
	}
}

// elementText renders one array element the way a list join would: null becomes empty.
func elementText(e gjson.Result) string {
	switch e.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return e.Str
	case gjson.Number:
		return numberText(e)
	case gjson.True, gjson.False:
		return e.Raw
	}
	return compact(e.Raw)
}

func numberText(v gjson.Result) string {
	if i, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if math.Abs(v.Num) >= 1e21 {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

func compact(raw string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return raw
	}
	return buf.String()
}
