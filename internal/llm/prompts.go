package llm

import (
	"fmt"
	"strings"

	"github.com/gvawatch/gva-console/internal/export"
	"github.com/gvawatch/gva-console/internal/gva"
)

// ChatSystemInstruction is the fixed system instruction for the chat
// session. It never varies between sessions.
const ChatSystemInstruction = "You are a calm, factual assistant embedded in a gun-violence statistics console. " +
	"Answer questions about gun-violence data, prevention resources, and safety practices in the United States. " +
	"Be concise and compassionate, cite figures only when you are confident in them, and encourage anyone in " +
	"immediate danger to call 911. Do not provide guidance on acquiring or using weapons."

const reportSystemInstruction = "You are a data analyst writing for a public gun-violence statistics dashboard. " +
	"Produce a structured report with sections: Overview, Ten-Year Trends, Notable Incidents, and Context. " +
	"Ground every claim in the supplied data or in current reputable sources. Keep a neutral, factual tone."

// reportPrompt embeds the full summary table and the incident sample as
// context for the report generation call.
func reportPrompt(table gva.Table, sample []gva.Record) string {
	var sb strings.Builder
	sb.WriteString("Write a report on gun violence in the United States based on the data below. ")
	sb.WriteString("Supplement the ten-year summary with recent developments from the web where relevant.\n\n")

	sb.WriteString("Ten-year summary (CSV):\n")
	sb.WriteString(export.SummaryCSV(table))

	sb.WriteString("\nIncident sample:\n")
	for _, r := range sample {
		sb.WriteString(fmt.Sprintf("- %s | %s, %s | %s | killed=%d injured=%d\n",
			r.Date, r.CityCounty, r.State, r.Address, r.Killed, r.Injured))
	}
	sb.WriteString("\nGenerate the report now.\n")
	return sb.String()
}

// resourcesPrompt asks for local safety resources. Without coordinates the
// query falls back to a generic metropolitan-area phrasing.
func resourcesPrompt(coords *gva.Coordinates) string {
	area := "in major US metropolitan areas"
	if coords != nil {
		area = fmt.Sprintf("near latitude %.4f, longitude %.4f", coords.Lat, coords.Lng)
	}
	return "List gun-violence prevention and victim-support resources " + area + ": " +
		"crisis hotlines, hospitals with trauma centers, community violence-intervention programs, " +
		"and counseling services. Include names, addresses where available, and contact details."
}
