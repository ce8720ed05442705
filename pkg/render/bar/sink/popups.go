package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/stackbar/pkg/fonts"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

const (
	popupCSS = `
    .popup { pointer-events: none; transition: opacity 0.15s ease; }
    .popup[visibility="hidden"] { opacity: 0; }
    .popup[visibility="visible"] { opacity: 1; }`

	popupJS = `
    (function () {
      const svg = %s;
      if (!svg) return;
      svg.querySelectorAll('.stack').forEach(stack => {
        const popup = svg.querySelector('.popup[data-for="stack-' + stack.dataset.index + '"]');
        if (!popup) return;
        stack.addEventListener('mousemove', () => popup.setAttribute('visibility', 'visible'));
        stack.addEventListener('mouseout', () => popup.setAttribute('visibility', 'hidden'));
      });
      svg.querySelectorAll('rect.bar').forEach(rect => {
        const fill = rect.getAttribute('fill');
        rect.addEventListener('mouseenter', () => rect.setAttribute('fill', rect.dataset.hover || fill));
        rect.addEventListener('mouseleave', () => rect.setAttribute('fill', fill));
      });
    })();`
)

// Popup box geometry.
const (
	popupPadding = 8.0
	popupLine    = 14.0
	popupArrow   = 6.0
)

// renderPopup draws a hidden tooltip box centered above the tip's anchor.
func renderPopup(buf *bytes.Buffer, m fonts.Measurer, i int, tip bar.Tip) {
	ls := lines(tip.Content)
	var w float64
	for _, line := range ls {
		w = max(w, m.Measure(line).Width)
	}
	w += 2 * popupPadding
	h := float64(len(ls))*popupLine + 2*popupPadding
	x := tip.Anchor.X - w/2
	y := tip.Anchor.Y - popupArrow - h

	fmt.Fprintf(buf, `    <g class="popup" data-for="stack-%d" visibility="hidden" transform="translate(%s,%s)">`+"\n",
		i, num(x), num(y))
	fmt.Fprintf(buf, `      <rect width="%s" height="%s" rx="3" fill="rgba(0,0,0,0.8)"/>`+"\n", num(w), num(h))
	fmt.Fprintf(buf, `      <path d="M%s,%sl%s,%sl%s,%sz" fill="rgba(0,0,0,0.8)"/>`+"\n",
		num(w/2-popupArrow), num(h), num(popupArrow), num(popupArrow), num(popupArrow), num(-popupArrow))
	fmt.Fprintf(buf, `      <text fill="#fff" x="%s" y="%s">`, num(popupPadding), num(popupPadding))
	for _, line := range ls {
		fmt.Fprintf(buf, `<tspan x="%s" dy="%s">%s</tspan>`, num(popupPadding), num(popupLine), EscapeXML(line))
	}
	buf.WriteString("</text>\n    </g>\n")
}

func renderPopupScript(buf *bytes.Buffer, id string) {
	root := "document.querySelector('svg')"
	if id != "" {
		root = "document.getElementById(" + strconv.Quote(id) + ")"
	}
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(popupJS, root))
}
