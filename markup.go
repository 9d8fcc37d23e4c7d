package glassfx

import (
	"fmt"
	"strings"
)

// displacementScale is the feDisplacementMap scale. With channel values
// centred on 127 it maps a full-strength gradient to roughly ±63 pixels.
const displacementScale = 127

// channelIsolation lists, per colour channel, the feComponentTransfer
// functions that keep that channel and zero the other two.
var channelIsolation = [3]string{
	`<feFuncR type="identity"/><feFuncG type="discrete" tableValues="0"/><feFuncB type="discrete" tableValues="0"/>`,
	`<feFuncR type="discrete" tableValues="0"/><feFuncG type="identity"/><feFuncB type="discrete" tableValues="0"/>`,
	`<feFuncR type="discrete" tableValues="0"/><feFuncG type="discrete" tableValues="0"/><feFuncB type="identity"/>`,
}

// channelNames are the result-name prefixes of the three chromatic stages.
var channelNames = [3]string{"r", "g", "b"}

// writeImageStage writes an feImage referencing href under result name.
func writeImageStage(b *strings.Builder, result, href string) {
	fmt.Fprintf(b, `<feImage result="%s" href="%s" color-interpolation-filters="sRGB"/>`, result, href)
	b.WriteByte('\n')
}

// writeDisplacementStage writes an feDisplacementMap of SourceGraphic by
// the image named in2. An empty result omits the attribute.
func writeDisplacementStage(b *strings.Builder, in2, result string) {
	fmt.Fprintf(b, `<feDisplacementMap in="SourceGraphic" in2="%s" scale="%d" xChannelSelector="R" yChannelSelector="B"`,
		in2, displacementScale)
	if result != "" {
		fmt.Fprintf(b, ` result="%s"`, result)
	}
	b.WriteString("/>\n")
}

// singleStageMarkup displaces every channel by one map.
func singleStageMarkup(href string) string {
	var b strings.Builder
	writeImageStage(&b, "FEIMG", href)
	writeDisplacementStage(&b, "FEIMG", "")
	return b.String()
}

// chromaticMarkup displaces each colour channel by its own map, keeps only
// that channel of each result, and adds the three back together.
func chromaticMarkup(hrefs [3]string) string {
	var b strings.Builder
	for i, name := range channelNames {
		writeImageStage(&b, name, hrefs[i])
		writeDisplacementStage(&b, name, name+"Disp")
		fmt.Fprintf(&b, `<feComponentTransfer in="%sDisp" result="%sCh">%s</feComponentTransfer>`,
			name, name, channelIsolation[i])
		b.WriteByte('\n')
	}
	b.WriteString(`<feComposite in="rCh" in2="gCh" operator="arithmetic" k2="1" k3="1" result="rg"/>`)
	b.WriteByte('\n')
	b.WriteString(`<feComposite in="rg" in2="bCh" operator="arithmetic" k2="1" k3="1" result="final"/>`)
	b.WriteByte('\n')
	return b.String()
}
