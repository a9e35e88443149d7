package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/utils"
)

const (
	xmlHeader    = `<?xml version="1.0" encoding="ISO-8859-1" ?>` + "\n"
	xmlRootTag   = "DETALHAMENTOPLANNIX"
	xmlExtension = ".xml"
)

// Serializer renders export documents in the planning tool layout
type Serializer struct {
	san *Sanitizer
	log *logger.Logger
}

// NewSerializer creates a serializer
func NewSerializer(log *logger.Logger, tracker *RunTracker) *Serializer {
	if log == nil {
		log = logger.Nop()
	}
	return &Serializer{san: NewSanitizer(log, tracker), log: log}
}

type docWriter struct {
	b    strings.Builder
	s    *Serializer
	name string
}

func (w *docWriter) leaf(indent int, tag, value string) {
	w.b.WriteString(strings.Repeat("\t", indent))
	w.b.WriteString("<" + tag + ">")
	w.b.WriteString(w.s.san.Clean(value, "piece", w.name, "tag", tag))
	w.b.WriteString("</" + tag + ">\n")
}

func (w *docWriter) open(indent int, tag string) {
	w.b.WriteString(strings.Repeat("\t", indent) + "<" + tag + ">\n")
}

func (w *docWriter) close(indent int, tag string) {
	w.b.WriteString(strings.Repeat("\t", indent) + "</" + tag + ">\n")
}

// Render returns the document text
func (s *Serializer) Render(doc model.Document) string {
	w := &docWriter{s: s}
	attr := func(name, value string) string {
		return s.san.Clean(value, "attribute", name)
	}
	w.b.WriteString(xmlHeader)
	fmt.Fprintf(&w.b, "<%s obra=\"%s\" name=\"%s\" projetista=\"%s\">\n", xmlRootTag,
		attr("obra", doc.Envelope.Site),
		attr("name", doc.Envelope.Project),
		attr("projetista", doc.Envelope.Designer),
	)
	for _, p := range doc.Pieces {
		w.name = p.Name
		w.writePiece(p)
	}
	w.b.WriteString("</" + xmlRootTag + ">")
	return w.b.String()
}

func (w *docWriter) writePiece(p model.PieceRecord) {
	w.open(1, "PECA")
	w.leaf(2, "NOMEPECA", p.Name)
	w.leaf(2, "CODCONTROLE", p.ControlCode)
	w.leaf(2, "DESENHO", p.Drawing)
	w.leaf(2, "TIPOPRODUTO", p.Product)
	w.leaf(2, "GRUPO", p.Group)
	w.leaf(2, "SECAO", p.Section)
	w.leaf(2, "INFOADICIONAL", p.Info)
	w.leaf(2, "QUANTIDADE", strconv.Itoa(p.Quantity))
	w.leaf(2, "COMPRIMENTO", p.Length)
	w.leaf(2, "ALTURA", p.Height)
	w.leaf(2, "LARGURA", p.Width)
	w.leaf(2, "VOLUMEUNITARIO", p.Volume)
	w.leaf(2, "PESO", p.Weight)
	w.leaf(2, "AREA", p.Area)
	w.leaf(2, "CLASSECONCRETO", p.ConcreteClass)
	w.leaf(2, "ACABAMENTO", p.Finish)
	w.leaf(2, "COBRIMENTO", p.Cover)
	w.leaf(2, "OBS", p.Notes)

	w.open(2, "LISTAID")
	for _, id := range p.IDs {
		w.leaf(3, "ID", id)
	}
	w.close(2, "LISTAID")

	w.open(2, "TABELAACO")
	for _, r := range p.Rebar {
		w.open(3, "POSICAO")
		w.leaf(4, "POS", r.Mark)
		w.leaf(4, "PRODUTO", r.Product)
		w.leaf(4, "TIPO", r.Type)
		w.leaf(4, "BITOLA", r.Diameter)
		w.leaf(4, "QTDE", strconv.FormatInt(r.Quantity, 10))
		w.leaf(4, "COMP_TOTAL", utils.Fixed3(r.TotalLength))
		w.close(3, "POSICAO")
	}
	w.close(2, "TABELAACO")

	w.open(2, "COMPLEMENTOS")
	for _, c := range p.Complements {
		w.open(3, "COMPLEMENTO")
		w.leaf(4, "TIPO", c.Kind)
		w.leaf(4, "NOME", c.Name)
		w.leaf(4, "QTDE", strconv.Itoa(c.Quantity))
		w.leaf(4, "LARGURA", "0")
		w.leaf(4, "COMPRIMENTO", "0")
		w.leaf(4, "ALTURA", "0")
		w.leaf(4, "VOLUME", utils.Fixed3(c.Volume))
		w.leaf(4, "PESO", utils.Fixed3(c.Weight))
		w.close(3, "COMPLEMENTO")
	}
	w.close(2, "COMPLEMENTOS")
	w.close(1, "PECA")
}

// Encode converts text to ISO-8859-1. Runes outside the charset become '?'
// and are logged once each.
func (s *Serializer) Encode(text string) []byte {
	out := make([]byte, 0, len(text))
	reported := make(map[rune]bool)
	for _, r := range text {
		if b, ok := charmap.ISO8859_1.EncodeRune(r); ok && r != utf8.RuneError {
			out = append(out, b)
			continue
		}
		if !reported[r] {
			reported[r] = true
			s.log.Warn("character not representable in ISO-8859-1 replaced by '?'", "character", string(r))
		}
		out = append(out, '?')
	}
	return out
}

// WriteDocument renders doc and writes it into dir under a fresh time-stamped name
func (s *Serializer) WriteDocument(doc model.Document, dir, prefix string, now time.Time) (model.ExportResult, error) {
	result := model.ExportResult{RecordCount: len(doc.Pieces), Timestamp: now}
	data := s.Encode(s.Render(doc))
	om := utils.NewOutputManager(dir, prefix)
	path, err := om.CreateExclusive(now, xmlExtension, data)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.Path = path
	result.Bytes = len(data)
	result.Success = true
	return result, nil
}
