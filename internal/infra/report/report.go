package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/quizmasterhq/quizmaster/internal/domain/dto"
)

// Generator формирует PDF-отчеты по завершенным попыткам
type Generator struct {
	fontsDir string
}

// NewGenerator создает новый экземпляр Generator. fontsDir должен содержать
// шрифты DejaVuSans.ttf и DejaVuSans-Bold.ttf с поддержкой кириллицы.
func NewGenerator(fontsDir string) *Generator {
	if fontsDir == "" {
		fontsDir = "assets/fonts"
	}
	return &Generator{fontsDir: fontsDir}
}

// WritePDF генерирует PDF-отчет по результату попытки и пишет его в w.
// Отчет формируется в виде непрерывного текста с переносами.
func (g *Generator) WritePDF(w io.Writer, username string, result *dto.QuizResult) error {
	// Создаем новый PDF документ формата A4.
	pdf := gofpdf.New("P", "mm", "A4", "")

	// Регистрируем UTF-8 шрифты, поддерживающие кириллицу.
	pdf.AddUTF8Font("DejaVu", "", filepath.Join(g.fontsDir, "DejaVuSans.ttf"))
	pdf.AddUTF8Font("DejaVu", "B", filepath.Join(g.fontsDir, "DejaVuSans-Bold.ttf"))

	pdf.SetFont("DejaVu", "", 14)
	pdf.AddPage()

	// Заголовок отчёта.
	pdf.SetFont("DejaVu", "B", 16)
	pdf.MultiCell(0, 10, "Отчет по прохождению квиза", "", "L", false)
	pdf.Ln(4)

	// Сводная информация о попытке.
	pdf.SetFont("DejaVu", "", 12)
	completedAt := "-"
	if result.CompletedAt != nil {
		completedAt = result.CompletedAt.Format("02.01.2006 15:04")
	}
	correct := 0
	for _, a := range result.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	info := fmt.Sprintf("Пользователь: %s\nКвиз: %s\nНачало: %s\nЗавершение: %s\nРезультат: %.1f%% (%d правильных ответов из %d)\n",
		username, result.QuizName, result.StartedAt.Format("02.01.2006 15:04"), completedAt,
		result.Score, correct, len(result.Answers))
	pdf.MultiCell(0, 8, info, "", "L", false)
	pdf.Ln(4)

	// Для каждого вопроса выводим разбор ответа.
	for i, a := range result.Answers {
		qHeader := fmt.Sprintf("Вопрос %d:", i+1)
		pdf.SetFont("DejaVu", "B", 12)
		pdf.MultiCell(0, 8, qHeader, "", "L", false)

		pdf.SetFont("DejaVu", "", 12)
		pdf.MultiCell(0, 8, a.QuestionText, "", "L", false)
		pdf.Ln(2)

		verdict := "неверно"
		if a.IsCorrect {
			verdict = "верно"
		}
		answerLine := fmt.Sprintf("Ваш ответ: вариант %d (%s)\nПравильный: вариант %d\n",
			a.SelectedOption, verdict, a.CorrectOption)
		pdf.MultiCell(0, 8, answerLine, "", "L", false)
		pdf.Ln(4)
	}

	return pdf.Output(w)
}
