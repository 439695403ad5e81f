package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/pokefans/pokedex"
)

// TypeCalculator renders the attacker/defender effectiveness page.
func TypeCalculator(site SiteConfig, meta PageMeta, calc Calculator) templ.Component {
	return component(func(m *markup) {
		layout(m, site, meta, "", func(m *markup) {
			m.open("section", templ.Attributes{"class": "type-calculator"})
			m.element("h1", nil, "Type Effectiveness Calculator")
			m.open("form", templ.Attributes{"method": "get", "action": "/types/", "id": "type-form"})
			typeSelect(m, "attacker", "Attacking type", calc.Attackers, calc.Attacker)
			typeSelect(m, "defender", "Defending type", calc.Defenders, calc.Defender)
			m.element("button", templ.Attributes{"type": "submit", "class": "button button--primary"}, "Calculate")
			m.close("form")
			typeResult(m, pokedex.Calculate(calc.Attacker, calc.Defender))
			m.close("section")
		})
	})
}

// TypeResult renders only the verdict box.
func TypeResult(v pokedex.Verdict) templ.Component {
	return component(func(m *markup) {
		typeResult(m, v)
	})
}

func typeResult(m *markup, v pokedex.Verdict) {
	m.element("div", templ.Attributes{"id": "type-result", "class": ToneClass(v.Tone), "role": "status"}, v.Message)
}

func typeSelect(m *markup, name, label string, options []string, selected string) {
	m.open("div", templ.Attributes{"class": "field"})
	m.element("label", templ.Attributes{"for": name}, label)
	m.open("select", templ.Attributes{"id": name, "name": name, "class": "input"})
	m.element("option", templ.Attributes{"value": "", "selected": selected == ""}, "Choose a type")
	for _, o := range options {
		m.element("option", templ.Attributes{"value": o, "selected": selected == o}, pokedex.Icon(o)+" "+o)
	}
	m.close("select")
	m.close("div")
}
