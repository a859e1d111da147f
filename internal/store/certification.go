package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/certprep/internal/quiz"
)

// Catalog is the built-in list of certifications seeded on open.
var Catalog = []quiz.Certification{
	{ID: "aws-clf-c02", Code: "CLF-C02", Name: "AWS Certified Cloud Practitioner", Description: "Foundational understanding of AWS Cloud concepts, services and terminology."},
	{ID: "aws-saa-c03", Code: "SAA-C03", Name: "AWS Certified Solutions Architect - Associate", Description: "Designing resilient, high-performing, secure and cost-optimized architectures."},
	{ID: "aws-dva-c02", Code: "DVA-C02", Name: "AWS Certified Developer - Associate", Description: "Developing, deploying and debugging cloud-based applications on AWS."},
	{ID: "aws-soa-c02", Code: "SOA-C02", Name: "AWS Certified SysOps Administrator - Associate", Description: "Deploying, managing and operating workloads on AWS."},
	{ID: "aws-sap-c02", Code: "SAP-C02", Name: "AWS Certified Solutions Architect - Professional", Description: "Designing complex solutions across multiple accounts and workloads."},
}

func (s *Store) seedCertifications(ctx context.Context) error {
	for _, c := range Catalog {
		query, args := builder.Insert(tableCertifications).
			Columns("id", "code", "name", "description").
			Values(c.ID, c.Code, c.Name, c.Description).
			OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
			Query()
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", c.Code, err)
		}
	}
	return nil
}

// Certifications lists all known certifications ordered by code.
func (s *Store) Certifications(ctx context.Context) ([]quiz.Certification, error) {
	query, args := builder.Select("id", "code", "name", "description").
		From(builder.Table(tableCertifications)).
		OrderBy("code").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query certifications: %w", err)
	}
	defer rows.Close()

	var out []quiz.Certification
	for rows.Next() {
		var c quiz.Certification
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan certification: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Certification returns the certification with the given id or code.
func (s *Store) Certification(ctx context.Context, id string) (*quiz.Certification, error) {
	query, args := builder.Select("id", "code", "name", "description").
		From(builder.Table(tableCertifications)).
		Where(entsql.Or(entsql.EQ("id", id), entsql.EQ("code", id))).
		Limit(1).
		Query()
	var c quiz.Certification
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Code, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("certification %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query certification: %w", err)
	}
	return &c, nil
}
