package loader

import "encoding/xml"

// xmlProgram mirrors the root <program> element described in §4.3 and §6.
type xmlProgram struct {
	XMLName     xml.Name        // validated manually so a name mismatch reports 32, not the XML decoder's 31
	Language    string          `xml:"language,attr"`
	Name        string          `xml:"name,attr"`
	Description string          `xml:"description,attr"`
	Attrs       []xml.Attr      `xml:",any,attr"`
	Instrs      []xmlInstruction `xml:"instruction"`
}

type xmlInstruction struct {
	Order  string    `xml:"order,attr"`
	Opcode string    `xml:"opcode,attr"`
	Attrs  []xml.Attr `xml:",any,attr"`
	Arg1   *xmlArg    `xml:"arg1"`
	Arg2   *xmlArg    `xml:"arg2"`
	Arg3   *xmlArg    `xml:"arg3"`
}

type xmlArg struct {
	Type  string `xml:"type,attr"`
	Text  string `xml:",chardata"`
	Attrs []xml.Attr `xml:",any,attr"`
}
