package exportController

import (
	"feedbackapi/database"
	"feedbackapi/middleware"
	"feedbackapi/models"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// exportHeaders is the fixed column order of the feedback report.
var exportHeaders = []string{
	"ID",
	"Name",
	"Email",
	"Phone",
	"Date of Experience",
	"Date of Feedback",
	"Overall Experience",
	"Quality of Service",
	"Timeliness",
	"Professionalism",
	"Communication Ease",
	"What Did You Like Most",
	"Suggestions for Improvement",
	"Recommendation",
	"Can Publish",
	"Follow Up",
	"Calculated Overall Rating",
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func exportRow(item models.Feedback) []string {
	return []string{
		strconv.FormatUint(uint64(item.ID), 10),
		item.Name,
		item.Email,
		item.Phone,
		item.DateOfExperience.Format("2006-01-02"),
		item.DateOfFeedback.Format("2006-01-02"),
		strconv.Itoa(item.OverallExp),
		strconv.Itoa(item.QualityOfService),
		strconv.Itoa(item.Timeliness),
		strconv.Itoa(item.Professionalism),
		strconv.Itoa(item.CommunicationEase),
		item.WhatLikedMost,
		item.SuggestionImprovement,
		item.Recommendation,
		yesNo(item.CanPublish),
		yesNo(item.FollowUp),
		fmt.Sprintf("%.2f", item.AverageRating()),
	}
}

// Export renders the full feedback set as CSV or an XLSX workbook.
func Export(c *fiber.Ctx) error {
	format := c.Query("format", "csv")
	if format != "csv" && format != "excel" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid format. Must be csv or excel!")
	}

	var feedback []models.Feedback
	if err := database.Database.Db.
		Order("date_of_feedback desc").
		Find(&feedback).Error; err != nil {
		log.Printf("Error loading feedback for export: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export feedback!")
	}

	rows := make([][]string, len(feedback))
	for i, item := range feedback {
		rows[i] = exportRow(item)
	}

	if format == "excel" {
		return writeExcel(c, rows)
	}
	return writeCSV(c, rows)
}

func writeCSV(c *fiber.Ctx, rows [][]string) error {
	var b strings.Builder

	writeRow := func(row []string) {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			// Every field is double-quoted; embedded quotes are doubled
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}

	writeRow(exportHeaders)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(row)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=feedback-export.csv")
	return c.SendString(b.String())
}

func writeExcel(c *fiber.Ctx, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Feedback"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		log.Printf("Error preparing workbook: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export feedback!")
	}

	if err := f.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
		log.Printf("Error writing workbook header: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export feedback!")
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			log.Printf("Error writing workbook row: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export feedback!")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Error rendering workbook: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export feedback!")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=feedback-export.xlsx")
	return c.Send(buf.Bytes())
}
