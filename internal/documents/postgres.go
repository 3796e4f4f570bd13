package documents

import (
	"context"

	"github.com/google/uuid"

	"docutrail/pkg/pagination"
	"docutrail/pkg/repository"
)

type postgresStore struct {
	db repository.DB
}

// NewPostgresStore creates a document store over the given database handle.
// The handle may be a connection pool or an open transaction.
func NewPostgresStore(db repository.DB) Store {
	return &postgresStore{db: db}
}

const baseColumns = `id, reference_number, title, description, source, classification,
	status, action_type, correspondent_name, correspondent_agency,
	attachment_name, attachment_key, content_type, size_bytes, page_count, signature_key,
	created_by, assigned_to, origin_department_id, current_department_id,
	created_at, updated_at, logged_at`

func (s *postgresStore) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	sql, args := builder(Filters{}, pagination.PageRequest{}).BuildSingle("id", id)

	doc, err := repository.QueryOne(ctx, s.db, sql, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (s *postgresStore) FindForUpdate(ctx context.Context, id uuid.UUID) (*Document, error) {
	q := "SELECT " + baseColumns + " FROM documents WHERE id = $1 FOR UPDATE"

	doc, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanBaseDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (s *postgresStore) Insert(ctx context.Context, doc *Document) error {
	q := `INSERT INTO documents (
		id, reference_number, title, description, source, classification,
		status, action_type, correspondent_name, correspondent_agency,
		attachment_name, attachment_key, content_type, size_bytes, page_count, signature_key,
		created_by, assigned_to, origin_department_id, current_department_id, logged_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
	) RETURNING created_at, updated_at`

	row := s.db.QueryRowContext(ctx, q,
		doc.ID, doc.ReferenceNumber, doc.Title, doc.Description, doc.Source, doc.Classification,
		doc.Status, doc.ActionType, doc.CorrespondentName, doc.CorrespondentAgency,
		doc.AttachmentName, doc.AttachmentKey, doc.ContentType, doc.SizeBytes, doc.PageCount, doc.SignatureKey,
		doc.CreatedBy, doc.AssignedTo, doc.OriginDepartmentID, doc.CurrentDepartmentID, doc.LoggedAt,
	)

	if err := row.Scan(&doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (s *postgresStore) Update(ctx context.Context, doc *Document) error {
	q := `UPDATE documents SET
		title = $2, description = $3, classification = $4, status = $5,
		action_type = $6, attachment_name = $7, attachment_key = $8,
		content_type = $9, size_bytes = $10, page_count = $11, signature_key = $12,
		assigned_to = $13, current_department_id = $14, logged_at = $15,
		updated_at = now()
	WHERE id = $1
	RETURNING updated_at`

	row := s.db.QueryRowContext(ctx, q,
		doc.ID, doc.Title, doc.Description, doc.Classification, doc.Status,
		doc.ActionType, doc.AttachmentName, doc.AttachmentKey,
		doc.ContentType, doc.SizeBytes, doc.PageCount, doc.SignatureKey,
		doc.AssignedTo, doc.CurrentDepartmentID, doc.LoggedAt,
	)

	if err := row.Scan(&doc.UpdatedAt); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (s *postgresStore) NextRefSequence(ctx context.Context) (int64, error) {
	var seq int64
	row := s.db.QueryRowContext(ctx, "SELECT nextval('document_ref_seq')")
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func (s *postgresStore) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	b := builder(filters, page)

	countSQL, countArgs := b.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	pageSQL, pageArgs := b.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func scanBaseDocument(s repository.Scanner) (Document, error) {
	var d Document
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
	)
	return d, err
}
