package editor

import "flowedit/diagram"

// PaletteItem is an entry of the node palette.
type PaletteItem struct {
	Type        diagram.NodeType
	Label       string
	Description string
	Category    string
	Icon        rune
}

// Palette categories
const (
	CategoryEvents     = "events"
	CategoryActivities = "activities"
	CategoryGateways   = "gateways"
	CategoryData       = "data"
	CategoryArtifacts  = "artifacts"
)

var palette = []PaletteItem{
	{diagram.StartEvent, "Início", "Ponto de partida do processo", CategoryEvents, '○'},
	{diagram.IntermediateEvent, "Evento", "Evento intermediário", CategoryEvents, '◎'},
	{diagram.EndEvent, "Fim", "Término do processo", CategoryEvents, '●'},
	{diagram.Task, "Tarefa", "Atividade genérica", CategoryActivities, '▭'},
	{diagram.UserTask, "Tarefa Manual", "Atividade executada por uma pessoa", CategoryActivities, '☺'},
	{diagram.ServiceTask, "Tarefa Automática", "Atividade executada por um sistema", CategoryActivities, '⚙'},
	{diagram.Subprocess, "Subprocesso", "Processo aninhado", CategoryActivities, '⊞'},
	{diagram.Gateway, "Decisão", "Ponto de decisão", CategoryGateways, '◇'},
	{diagram.DataStore, "Banco de Dados", "Armazenamento de dados", CategoryData, '⛁'},
	{diagram.Document, "Documento", "Documento produzido ou consumido", CategoryData, '▤'},
	{diagram.Annotation, "Anotação", "Comentário livre", CategoryArtifacts, '✎'},
	{diagram.Frame, "Grupo", "Moldura de agrupamento", CategoryArtifacts, '⬚'},
	{diagram.Swimlane, "Raia", "Responsável pelas atividades", CategoryArtifacts, '☰'},
}

// Palette returns the palette items in display order.
func Palette() []PaletteItem {
	out := make([]PaletteItem, len(palette))
	copy(out, palette)
	return out
}

// Categories returns the palette categories in display order.
func Categories() []string {
	return []string{CategoryEvents, CategoryActivities, CategoryGateways, CategoryData, CategoryArtifacts}
}

// PaletteItemFor looks up the palette entry of a node type.
func PaletteItemFor(t diagram.NodeType) (PaletteItem, bool) {
	for _, it := range palette {
		if it.Type == t {
			return it, true
		}
	}
	return PaletteItem{}, false
}

// DefaultLabel is the label a new node of type t starts with.
func DefaultLabel(t diagram.NodeType) string {
	if it, ok := PaletteItemFor(t); ok {
		return it.Label
	}
	return "Nó"
}

// ToggleCategory expands or collapses a palette category and returns its new state.
func (e *Editor) ToggleCategory(cat string) bool {
	e.expanded[cat] = !e.expanded[cat]
	return e.expanded[cat]
}

// Expanded reports whether a palette category is open.
func (e *Editor) Expanded(cat string) bool {
	return e.expanded[cat]
}
