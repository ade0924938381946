package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	entityapimodels "pm-tools-backend/models/api/entity"
)

const dateFormat = "02.01.2006 15:04"

// GenerateEntityCard формирует карточку записи с журналом изменений
func GenerateEntityCard(view entityapimodels.EntityView, logs []entityapimodels.LogView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateEntityCard panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.Cell(0, 10, fmt.Sprintf("%s %s", view.Number, view.Title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	writeField(pdf, "Статус", string(view.Status))
	writeField(pdf, "Приоритет", string(view.Priority))
	writeField(pdf, "Проект", view.ProjectName)
	writeField(pdf, "Автор", view.RaisedByName)
	writeField(pdf, "Ответственный", view.AssigneeName)
	writeField(pdf, "Дата регистрации", view.RaisedAt.Format(dateFormat))
	if view.Score != 0 {
		writeField(pdf, "Вероятность", string(view.Probability))
		writeField(pdf, "Влияние", string(view.Impact))
		writeField(pdf, "Оценка", fmt.Sprintf("%d (%s)", view.Score, view.ScoreBand))
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Описание")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, view.Description, "", "L", false)
	pdf.Ln(4)

	if len(logs) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Журнал изменений")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, entry := range logs {
			line := fmt.Sprintf("%s  %s  %s", entry.LoggedAt.Format(dateFormat), entry.LogType, entry.LoggedByName)
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
			if entry.Comments != "" {
				pdf.MultiCell(0, 5, entry.Comments, "", "L", false)
			}
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, name, value string) {
	if value == "" {
		return
	}
	pdf.Cell(50, 6, name)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}
