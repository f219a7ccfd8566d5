// pkg/ingress/service.go
package ingress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/config"
	"github.com/retailops/warehouse-ingress/pkg/connector"
	"github.com/retailops/warehouse-ingress/pkg/converter"
	"github.com/retailops/warehouse-ingress/pkg/logging"
	"github.com/retailops/warehouse-ingress/pkg/mapper"
	"github.com/retailops/warehouse-ingress/pkg/model"
	"github.com/retailops/warehouse-ingress/pkg/parser"
)

// Source is a per-request connection to a caller-supplied source database.
type Source interface {
	Extract(ctx context.Context, query string, timeout time.Duration) ([]string, []model.RawRecord, error)
	Probe(ctx context.Context, timeout time.Duration) error
	ListTables(ctx context.Context, timeout time.Duration) ([]connector.SourceTable, error)
	Close() error
}

// SourceOpener opens a verified source connection from a descriptor.
type SourceOpener func(ctx context.Context, details connector.ConnectionDetails, pingTimeout time.Duration) (Source, error)

func openSource(ctx context.Context, details connector.ConnectionDetails, pingTimeout time.Duration) (Source, error) {
	return connector.OpenSource(ctx, details, pingTimeout)
}

// Service runs the ingress pipeline: extract or parse, map onto a canonical
// schema, coerce temporals, serialize, load. One instance serves all
// requests; source connections are opened per request and closed on every
// exit path.
type Service struct {
	loader       *LoadExecutor
	openSource   SourceOpener
	queryTimeout time.Duration
	pingTimeout  time.Duration
	logger       *zap.Logger
}

// NewService creates the ingress service on top of a warehouse connection
func NewService(warehouse Warehouse, cfg *config.Config) *Service {
	return &Service{
		loader:       NewLoadExecutor(warehouse),
		openSource:   openSource,
		queryTimeout: cfg.SourceQueryTimeout,
		pingTimeout:  cfg.SourcePingTimeout,
		logger:       zap.L().Named("ingress"),
	}
}

// WithSourceOpener overrides how source connections are opened and returns
// the modified service.
func (s *Service) WithSourceOpener(open SourceOpener) *Service {
	s.openSource = open
	return s
}

// RunQuery executes an ad hoc query against a caller-supplied source,
// normalizes the result onto the entity's canonical schema, and loads it
// into the warehouse. The raw result set is echoed back regardless of how
// the load went.
func (s *Service) RunQuery(
	ctx context.Context,
	entityTag string,
	query string,
	details connector.ConnectionDetails,
) (*QueryResult, error) {
	schema, err := model.LookupSchema(entityTag)
	if err != nil {
		return nil, NewError(KindUnknownEntity, err.Error(), err)
	}

	src, err := s.openSource(ctx, details, s.pingTimeout)
	if err != nil {
		return nil, s.connectionError(details, err)
	}
	defer src.Close()

	columns, rows, err := src.Extract(ctx, query, s.queryTimeout)
	if err != nil {
		msg := logging.Redact(logging.RedactSecret(err.Error(), details.Password))
		return nil, NewError(KindQuery, msg, nil)
	}

	if len(rows) == 0 {
		s.logger.Info("Query returned no rows", zap.String("entity", entityTag))
		return &QueryResult{
			Success:  true,
			Data:     []map[string]interface{}{},
			RowCount: 0,
			Columns:  []string{},
		}, nil
	}

	mapped, err := s.normalize(schema, columns, rows)
	if err != nil {
		return nil, err
	}

	load := s.loader.Load(ctx, schema.Entity, mapped)

	s.logger.Info("Query pipeline complete",
		zap.String("entity", entityTag),
		zap.Int("rowCount", len(rows)),
		zap.Int("persisted", load.Persisted))

	return &QueryResult{
		Success:        true,
		Data:           converter.SerializeRows(rows),
		RowCount:       len(rows),
		Columns:        columns,
		PersistedCount: load.Persisted,
	}, nil
}

// LoadFile parses an uploaded CSV or spreadsheet, normalizes it onto the
// entity's canonical schema, and loads it into the warehouse.
func (s *Service) LoadFile(
	ctx context.Context,
	entityTag string,
	filename string,
	contents []byte,
) (*FileResult, error) {
	schema, err := model.LookupSchema(entityTag)
	if err != nil {
		return nil, NewError(KindUnknownEntity, err.Error(), err)
	}

	columns, rows, err := parser.Parse(filename, contents)
	if err != nil {
		return nil, NewError(KindFormat, err.Error(), err)
	}

	if len(rows) == 0 {
		s.logger.Info("Uploaded file contained no data rows",
			zap.String("entity", entityTag),
			zap.String("filename", filename))
		return &FileResult{
			Success: true,
			Message: fmt.Sprintf("No data rows found in %s", filename),
		}, nil
	}

	mapped, err := s.normalize(schema, columns, rows)
	if err != nil {
		return nil, err
	}

	load := s.loader.Load(ctx, schema.Entity, mapped)

	s.logger.Info("File pipeline complete",
		zap.String("entity", entityTag),
		zap.String("filename", filename),
		zap.Int("rowsProcessed", len(rows)),
		zap.Int("persisted", load.Persisted))

	return &FileResult{
		Success:       true,
		Message:       fmt.Sprintf("Processed %d rows from %s", len(rows), filename),
		RowsProcessed: len(rows),
		RowsPersisted: load.Persisted,
	}, nil
}

// TestConnection verifies that a source descriptor yields a usable
// connection.
func (s *Service) TestConnection(ctx context.Context, details connector.ConnectionDetails) (*ConnectionResult, error) {
	src, err := s.openSource(ctx, details, s.pingTimeout)
	if err != nil {
		return nil, s.connectionError(details, err)
	}
	defer src.Close()

	if err := src.Probe(ctx, s.pingTimeout); err != nil {
		return nil, s.connectionError(details, err)
	}

	return &ConnectionResult{Success: true, Message: "Connection successful"}, nil
}

// ListSourceTables introspects a source's catalog and returns its user
// tables.
func (s *Service) ListSourceTables(ctx context.Context, details connector.ConnectionDetails) ([]connector.SourceTable, error) {
	src, err := s.openSource(ctx, details, s.pingTimeout)
	if err != nil {
		return nil, s.connectionError(details, err)
	}
	defer src.Close()

	tables, err := src.ListTables(ctx, s.queryTimeout)
	if err != nil {
		msg := logging.Redact(logging.RedactSecret(err.Error(), details.Password))
		return nil, NewError(KindQuery, msg, nil)
	}

	return tables, nil
}

// ListEntities returns the canonical entities available as load targets.
func (s *Service) ListEntities() []EntityInfo {
	entities := model.Entities()
	infos := make([]EntityInfo, len(entities))
	for i, entity := range entities {
		infos[i] = EntityInfo{
			Tag:         entity.Tag(),
			Table:       entity.Table(),
			DisplayName: entity.DisplayName(),
			Description: entity.Description(),
			Fields:      entity.Schema().FieldNames(),
		}
	}
	return infos
}

// normalize runs the in-memory pipeline stages shared by queries and
// uploads: map, coerce, serialize.
func (s *Service) normalize(
	schema *model.CanonicalSchema,
	columns []string,
	rows []model.RawRecord,
) ([]*model.MappedRecord, error) {
	mapped, _ := mapper.New(schema).MapBatch(columns, rows)

	if err := converter.NewTypeCoercer().CoerceBatch(mapped); err != nil {
		var coerceErr *converter.CoerceError
		if errors.As(err, &coerceErr) {
			return nil, NewError(KindParse, coerceErr.Error(), err)
		}
		return nil, NewError(KindParse, err.Error(), err)
	}

	return converter.SerializeBatch(mapped), nil
}

// connectionError classifies a source connection failure. The message is
// scrubbed of the descriptor's password and any credential embedded in a
// connection string; the raw cause is deliberately not retained.
func (s *Service) connectionError(details connector.ConnectionDetails, err error) *Error {
	msg := logging.Redact(logging.RedactSecret(err.Error(), details.Password))
	return NewError(KindConnection, msg, nil)
}
