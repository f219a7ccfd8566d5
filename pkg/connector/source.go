// pkg/connector/source.go
package connector

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	sf "github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"
)

// Supported source drivers. Postgres is the default when the descriptor
// does not name one.
const (
	DriverPostgres  = "postgres"
	DriverSnowflake = "snowflake"
	DriverSQLServer = "sqlserver"
)

// ConnectionDetails describes a caller-supplied source database. Either the
// individual fields or a pre-formed URL may be given; URL wins when set.
type ConnectionDetails struct {
	Driver   string `json:"driver,omitempty"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url,omitempty"`
}

// DSN builds the driver-specific connection string for the descriptor.
func (d ConnectionDetails) DSN() (driverName, dsn string, err error) {
	if d.URL != "" {
		return d.driverName(), d.URL, nil
	}

	switch d.driverName() {
	case "pgx":
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
			url.QueryEscape(d.Username),
			url.QueryEscape(d.Password),
			d.Host,
			d.Port,
			d.Database,
		)
		return "pgx", dsn, nil

	case DriverSnowflake:
		// Snowflake addresses by account identifier, carried in the host field.
		dsn, err = sf.DSN(&sf.Config{
			Account:  d.Host,
			User:     d.Username,
			Password: d.Password,
			Database: d.Database,
		})
		if err != nil {
			return "", "", fmt.Errorf("failed to build Snowflake DSN: %w", err)
		}
		return DriverSnowflake, dsn, nil

	case DriverSQLServer:
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(d.Username, d.Password),
			Host:     fmt.Sprintf("%s:%s", d.Host, d.Port),
			RawQuery: url.Values{"database": {d.Database}}.Encode(),
		}
		return DriverSQLServer, u.String(), nil

	default:
		return "", "", fmt.Errorf("unsupported source driver %q", d.Driver)
	}
}

func (d ConnectionDetails) driverName() string {
	switch d.Driver {
	case "", DriverPostgres, "postgresql":
		return "pgx"
	default:
		return d.Driver
	}
}

// SourceConn is a live connection to a caller-supplied source database. One
// is opened per request and must be closed by the caller on every exit path.
type SourceConn struct {
	db      *sql.DB
	details ConnectionDetails
	logger  *zap.Logger
}

// OpenSource opens and verifies a connection to the source database
// described by the descriptor. The returned connection holds a single
// underlying handle; pooling is deliberately not configured because the
// connection lives only for one request.
func OpenSource(ctx context.Context, details ConnectionDetails, pingTimeout time.Duration) (*SourceConn, error) {
	logger := zap.L().Named("source-connector")

	// Log connection attempt (without credentials)
	logger.Info("Connecting to source database",
		zap.String("driver", details.driverName()),
		zap.String("host", details.Host),
		zap.String("database", details.Database),
		zap.String("user", details.Username))

	driverName, dsn, err := details.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize source connection: %w", err)
	}

	// One request, one handle.
	db.SetMaxOpenConns(1)

	if err := PingWithTimeout(ctx, db, pingTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to source database: %w", err)
	}

	return &SourceConn{
		db:      db,
		details: details,
		logger:  logger,
	}, nil
}

// DB returns the underlying database connection
func (c *SourceConn) DB() *sql.DB {
	return c.db
}

// Close closes the source connection
func (c *SourceConn) Close() error {
	c.logger.Debug("Closing source connection",
		zap.String("host", c.details.Host),
		zap.String("database", c.details.Database))
	return c.db.Close()
}

// Probe verifies the connection with a trivial round-trip query.
func (c *SourceConn) Probe(ctx context.Context, timeout time.Duration) error {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var one int
	if err := c.db.QueryRowContext(probeCtx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("source probe query failed: %w", err)
	}
	return nil
}

// Query executes a query on the source. The caller owns the context
// deadline and must close the returned rows; cancelling before the rows are
// drained invalidates them.
func (c *SourceConn) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}
