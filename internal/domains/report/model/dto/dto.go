package dto

import (
	"medsched/internal/domains/report/model"
	"medsched/shared/constant"
	"medsched/shared/timezone"
)

type ReportResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Format    string `json:"format"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func (r *ReportResponse) FromModel(report model.Report) {
	r.ID = report.ID
	r.Title = report.Title
	r.Format = string(report.Format)
	r.Content = report.Content
	r.CreatedAt = timezone.Format(report.CreatedAt, constant.DateFormat)
}

type GetReportsResponse struct {
	Reports   []ReportResponse `json:"reports"`
	TotalData int              `json:"total_data"`
}

func (r *GetReportsResponse) FromModels(models []model.Report) {
	r.TotalData = len(models)

	r.Reports = make([]ReportResponse, len(models))
	for i, mod := range models {
		r.Reports[i].FromModel(mod)
	}
}
