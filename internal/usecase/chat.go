package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/llm"
	"github.com/peoplecare/hrportal/internal/metrics"
	"github.com/peoplecare/hrportal/internal/repository"
)

// Questions outside these topics escalate to PEOPLE CARE instead of
// reaching the model.
var (
	scopeKeywordsEN = []string{
		"leave", "vacation", "annual leave", "sick leave", "personal leave",
		"time off", "holiday", "benefit", "benefits", "medical", "dental",
		"insurance", "ipd", "opd", "claim", "policy", "payroll", "salary",
		"overtime", "attendance", "timesheet", "shift", "cnext",
		"peoplecare", "hr", "credit limit",
	}
	scopeKeywordsTH = []string{
		"ลางาน", "ลากิจ", "ลาป่วย", "วันหยุด", "สิทธิ", "สิทธิ์", "สวัสดิการ",
		"ประกัน", "ค่ารักษา", "ทันตกรรม", "เบิก", "วงเงิน", "เครดิต", "นโยบาย",
		"เงินเดือน", "โอที", "ลงเวลา", "เข้างาน", "ออกงาน", "กะ", "เวลางาน",
		"cnext", "peoplecare", "ฝ่ายบุคคล", "ทรัพยากรบุคคล",
	}
)

const escalationTH = `โอ๊ยตาย! เรื่องนี้ป้าเองก็ตอบไม่ได้จริง ๆ จ้ะลูก
ถ้าเจอปัญหาเกี่ยวกับระบบ CNEXT นะ หลานสามารถเปิดตั๋วคำร้อง (Ticket) ได้เลย
แนบรูปภาพที่เจอปัญหา พร้อมชื่อ-นามสกุลกับรหัสพนักงานไปด้วยนะ จะได้ตรวจสอบง่าย ๆ

ส่งอีเมลไปที่ PeopleCare@central.co.th
หรือโทร 02-100-6789 แล้วกด 7 ตามด้วยกด 3
(เวลาทำการ จันทร์–ศุกร์ 08:30–18:00 ยกเว้นวันหยุดนักขัตฤกษ์)

รับรองว่า PEOPLE CARE จะรีบช่วยดูให้จ้ะ 😉`

const escalationEN = `Oh dear! Auntie can't help with this one, my love.
If you face issues with the CNEXT system, you can open a ticket.
Attach a screenshot of the problem along with your full name and employee ID.

Send an email to PeopleCare@central.co.th
Or call +66-2-100-6789, press 7 then 3
(Working hours: Mon–Fri, 08:30–18:00, excluding public holidays).

Don't worry, PEOPLE CARE will take good care of you 😉`

const noEmployeeData = "No employee-specific data available."

var contextPrefixRe = regexp.MustCompile(`(?i)^CONTEXT.*?:`)

type ChatUsecase struct {
	leaves   repository.LeaveBalanceRepository
	benefits repository.BenefitRepository
	model    llm.Client
	logger   *slog.Logger
}

// NewChatUsecase builds the Q&A flow. model may be nil when no API key is
// configured; every in-scope question then escalates.
func NewChatUsecase(
	leaves repository.LeaveBalanceRepository,
	benefits repository.BenefitRepository,
	model llm.Client,
	logger *slog.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		leaves:   leaves,
		benefits: benefits,
		model:    model,
		logger:   logger.With("component", "chat_usecase"),
	}
}

// Ask answers an HR question for the calling employee, in the language the
// question was asked in. Anything the flow cannot handle (out of scope,
// no employee data, no model, model failure) comes back as the canned
// escalation message rather than an error.
func (c *ChatUsecase) Ask(ctx context.Context, question, employeeID string) (string, error) {
	lang := "English"
	if isThai(question) {
		lang = "Thai"
	}

	if !c.inScope(question) {
		metrics.ChatRequestsTotal.WithLabelValues("escalated").Inc()
		return escalation(lang), nil
	}

	empCtx, err := c.buildContext(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if empCtx == noEmployeeData {
		metrics.ChatRequestsTotal.WithLabelValues("escalated").Inc()
		return escalation(lang), nil
	}

	if c.model == nil {
		metrics.ChatRequestsTotal.WithLabelValues("escalated").Inc()
		return escalation(lang), nil
	}

	answer, err := c.model.Generate(ctx, buildPrompt(lang, empCtx, question))
	if err != nil || answer == "" {
		// Model failures fall back to the escalation message so the user
		// always gets a way forward.
		if err != nil {
			c.logger.WarnContext(ctx, "llm call failed", "error", err)
		}
		metrics.ChatRequestsTotal.WithLabelValues("escalated").Inc()
		return escalation(lang), nil
	}

	if strings.HasPrefix(answer, "CONTEXT") {
		stripped := strings.TrimSpace(contextPrefixRe.ReplaceAllString(answer, ""))
		if lang == "Thai" {
			answer = "ป้าเล่าให้ฟังแบบง่าย ๆ เลยนะลูก: " + stripped
		} else {
			answer = "Let me explain simply, dear: " + stripped
		}
	}

	metrics.ChatRequestsTotal.WithLabelValues("answered").Inc()
	return answer, nil
}

func isThai(text string) bool {
	for _, r := range text {
		if r >= 0x0E00 && r <= 0x0E7F {
			return true
		}
	}
	return false
}

func (c *ChatUsecase) inScope(question string) bool {
	lower := strings.ToLower(question)
	for _, k := range scopeKeywordsEN {
		if strings.Contains(lower, k) {
			return true
		}
	}
	// Thai keywords match against the original string.
	for _, k := range scopeKeywordsTH {
		if strings.Contains(question, k) {
			return true
		}
	}
	return false
}

func escalation(lang string) string {
	if lang == "Thai" {
		return escalationTH
	}
	return escalationEN
}

// buildContext summarizes the employee's leave balances and benefit row
// into one English sentence the model can ground its answer on.
func (c *ChatUsecase) buildContext(ctx context.Context, employeeID string) (string, error) {
	if employeeID == "" {
		return noEmployeeData, nil
	}

	leaves, err := c.leaves.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("load leave balances: %w", err)
	}
	benefit, err := c.benefits.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("load benefit: %w", err)
	}

	var leaveParts []string
	if len(leaves) > 0 {
		byBank := make(map[string]*domain.LeaveBalance, len(leaves))
		for _, l := range leaves {
			byBank[l.AccrualBank] = l
		}

		seen := make(map[string]bool)
		order := []string{"Annual", "Sick", "Personal"}
		for _, l := range leaves {
			order = append(order, l.AccrualBank)
		}
		for _, bank := range order {
			l, ok := byBank[bank]
			if !ok || seen[bank] {
				continue
			}
			seen[bank] = true
			leaveParts = append(leaveParts, fmt.Sprintf(
				"%s Leave: %s days total, %s days used, %s days left (%s)",
				bank, fmtNum(l.Accrued), fmtNum(l.Used),
				fmtNum(l.EndingBalance), daysToHours(l.EndingBalance)))
		}
	}

	var benefitParts []string
	if benefit != nil {
		var summary []string
		if benefit.IPDRoom != nil {
			summary = append(summary, fmt.Sprintf("IPD Room %s", fmtNum(float64(*benefit.IPDRoom))))
		}
		if benefit.MedBalance != nil {
			summary = append(summary, fmt.Sprintf("Remaining Medical %s", fmtNum(*benefit.MedBalance)))
		}
		if benefit.DenBalance != nil {
			summary = append(summary, fmt.Sprintf("Remaining Dental %s", fmtNum(*benefit.DenBalance)))
		}
		if benefit.MedAccu != nil {
			summary = append(summary, fmt.Sprintf("Medical used %s", fmtNum(*benefit.MedAccu)))
		}
		if benefit.DenAccu != nil {
			summary = append(summary, fmt.Sprintf("Dental used %s", fmtNum(*benefit.DenAccu)))
		}
		if benefit.MaxCredit != nil {
			summary = append(summary, fmt.Sprintf("Max Credit %s", fmtNum(float64(*benefit.MaxCredit))))
		}
		if len(summary) > 0 {
			benefitParts = append(benefitParts, "Benefits: "+strings.Join(summary, ", "))
		}
	}

	var pieces []string
	if len(leaveParts) > 0 {
		pieces = append(pieces, strings.Join(leaveParts, ". "))
	}
	if len(benefitParts) > 0 {
		pieces = append(pieces, strings.Join(benefitParts, ". "))
	}
	if len(pieces) == 0 {
		return noEmployeeData, nil
	}

	return fmt.Sprintf("Employee %s has %s.", employeeID, strings.Join(pieces, ". ")), nil
}

func buildPrompt(lang, empCtx, question string) string {
	return strings.Join([]string{
		`You are "ป้าข้างบ้าน Chatbot", an HR Virtual Assistant.`,
		"Personality: Friendly, gossip-style auntie, slightly sassy but helpful.",
		"Always act like a neighbor gossiping but helpful.",
		fmt.Sprintf("IMPORTANT: User asked in **%s**, so you MUST reply in %s only.", lang, lang),
		"Do not mix languages.",
		"❌ Do not use markdown lists, bullets, or bold text.",
		"✅ Write as natural chatty sentences with line breaks only.",
		"If you don't know:",
		" " + escalation(lang),
		"",
		"CONTEXT: " + empCtx,
		"",
		"QUESTION: " + question,
		"",
		fmt.Sprintf("ANSWER (in %s, gossip auntie style):", lang),
	}, "\n")
}

// fmtNum renders whole numbers without decimals and everything else with
// at most two, comma-grouping the integer part.
func fmtNum(n float64) string {
	var s string
	if n == math.Trunc(n) {
		s = strconv.FormatInt(int64(n), 10)
	} else {
		s = strconv.FormatFloat(n, 'f', 2, 64)
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}

	neg := strings.HasPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	out := intPart
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// daysToHours converts leave days to a Thai hours-and-minutes phrase at
// 8.5 working hours per day.
func daysToHours(days float64) string {
	totalHours := days * 8.5
	h := math.Floor(totalHours)
	m := math.Round((totalHours - h) * 60)
	return fmt.Sprintf("%d ชั่วโมง %d นาที", int(h), int(m))
}
