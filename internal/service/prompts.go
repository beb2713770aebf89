package service

import (
	"fmt"
	"sort"
	"strings"

	"luminous-ledger/internal/dto"
	"luminous-ledger/internal/models"
)

// receiptPrompt enumerates exactly the fields the interpreter expects.
// No format validation happens here; that is the interpreter's job.
func receiptPrompt() string {
	return "Analyze this receipt image and extract the following fields as a JSON object: " +
		"amount (number, total paid), " +
		"date (string, YYYY-MM-DD), " +
		"store_name (string), " +
		"category (one of: food, shopping, entertainment, other_expense), " +
		"items (string, short summary of purchased items)."
}

var mindsetPersonas = map[string]string{
	"conservative_investor": "a prudent value investor who favors steady saving and low-risk assets",
	"aggressive_tech":       "a risk-tolerant tech entrepreneur chasing aggressive growth",
	"balanced_growth":       "a balanced planner who splits between saving and moderate investing",
}

// advicePrompt renders aggregated totals into a summary instruction and
// asks for a single JSON object with an "advice" field.
func advicePrompt(summary dto.FinanceSummary, mindset string) string {
	persona, ok := mindsetPersonas[mindset]
	if !ok {
		persona = mindsetPersonas["conservative_investor"]
	}

	var b strings.Builder
	b.WriteString("Here is a summary of my finances:\n")
	fmt.Fprintf(&b, "- Total income: %.2f\n", summary.TotalIncome)
	fmt.Fprintf(&b, "- Total expenses: %.2f\n", summary.TotalExpenses)
	fmt.Fprintf(&b, "- Balance: %.2f\n", summary.Balance)

	if len(summary.ByCategory) > 0 {
		b.WriteString("Expenses by category:\n")
		categories := make([]string, 0, len(summary.ByCategory))
		for category := range summary.ByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Fprintf(&b, "- %s: %.2f\n", category, summary.ByCategory[category])
		}
	}

	fmt.Fprintf(&b, "\nActing as %s, give me concrete, actionable advice on how to improve my savings. ", persona)
	b.WriteString(`Return a JSON object with a single "advice" field containing the advice text.`)
	return b.String()
}

// workflowPrompt asks for the task breakdown of a side-income project,
// in execution order.
func workflowPrompt(project *models.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I am starting a side-income project: %q.\n", project.Title)
	if project.Description != "" {
		fmt.Fprintf(&b, "Strategy: %s\n", project.Description)
	}
	if project.TargetIncome > 0 {
		fmt.Fprintf(&b, "Target income: %.0f\n", project.TargetIncome)
	}
	b.WriteString("Propose exactly 5 concrete tasks to make this project succeed, ordered by execution order. ")
	b.WriteString(`Return a JSON array of objects with fields "title" (string), "description" (string) and "priority" (one of: high, medium, low).`)
	return b.String()
}

// chatPrompt renders the running transcript into a single instruction.
// The latest user message is the last transcript entry.
func chatPrompt(messages []models.ChatMessage) string {
	var b strings.Builder
	b.WriteString("This is our conversation so far:\n")
	for _, m := range messages {
		switch m.Role {
		case models.RoleUser:
			b.WriteString("User: ")
		case models.RoleAssistant:
			b.WriteString("Assistant: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString(`Reply to the user's last message in character. Return a JSON object with a single "reply" field.`)
	return b.String()
}
