package documents

import (
	"docutrail/pkg/pagination"
	"docutrail/pkg/query"
	"docutrail/pkg/repository"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "documents", "d").
		Project("id", "id").
		Project("reference_number", "reference_number").
		Project("title", "title").
		Project("description", "description").
		Project("source", "source").
		Project("classification", "classification").
		Project("status", "status").
		Project("action_type", "action_type").
		Project("correspondent_name", "correspondent_name").
		Project("correspondent_agency", "correspondent_agency").
		Project("attachment_name", "attachment_name").
		Project("attachment_key", "attachment_key").
		Project("content_type", "content_type").
		Project("size_bytes", "size_bytes").
		Project("page_count", "page_count").
		Project("signature_key", "signature_key").
		Project("created_by", "created_by").
		Project("assigned_to", "assigned_to").
		Project("origin_department_id", "origin_department_id").
		Project("current_department_id", "current_department_id").
		Project("created_at", "created_at").
		Project("updated_at", "updated_at").
		Project("logged_at", "logged_at").
		Join("public", "departments", "od", "LEFT JOIN", "od.id = d.origin_department_id").
		Project("name", "origin_department_name").
		Join("public", "departments", "cd", "LEFT JOIN", "cd.id = d.current_department_id").
		Project("name", "current_department_name")
}

func builder(filters Filters, req pagination.PageRequest) *query.Builder {
	return query.NewBuilder(projection(), query.SortField{Field: "created_at", Descending: true}).
		WhereEquals("status", filters.Status).
		WhereEquals("source", filters.Source).
		WhereEquals("classification", filters.Classification).
		WhereEquals("reference_number", filters.ReferenceNumber).
		WhereEquals("created_by", filters.CreatedBy).
		WhereEquals("assigned_to", filters.AssignedTo).
		WhereEquals("current_department_id", filters.DepartmentID).
		WhereAnyEquals(filters.VisibleToActor, "created_by", "assigned_to").
		WhereAnyEquals(filters.VisibleToDepartment, "current_department_id", "origin_department_id").
		WhereSearch(req.Search, "title", "reference_number", "correspondent_name", "correspondent_agency").
		OrderByFields(req.Sort)
}

func scanDocument(s repository.Scanner) (Document, error) {
	var (
		d           Document
		originName  *string
		currentName *string
	)

	err := s.Scan(
		&d.ID,
		&d.ReferenceNumber,
		&d.Title,
		&d.Description,
		&d.Source,
		&d.Classification,
		&d.Status,
		&d.ActionType,
		&d.CorrespondentName,
		&d.CorrespondentAgency,
		&d.AttachmentName,
		&d.AttachmentKey,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.SignatureKey,
		&d.CreatedBy,
		&d.AssignedTo,
		&d.OriginDepartmentID,
		&d.CurrentDepartmentID,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.LoggedAt,
		&originName,
		&currentName,
	)
	if err != nil {
		return d, err
	}

	if originName != nil {
		d.OriginDepartmentName = *originName
	}
	if currentName != nil {
		d.CurrentDepartmentName = *currentName
	}

	return d, nil
}
