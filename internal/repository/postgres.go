package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleettrack/internal/models"
)

// PostgresStorage 基于 pgx 连接池的持久化实现
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgres 创建数据库连接并执行迁移
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStorage{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close 关闭连接池
func (s *PostgresStorage) Close() {
	s.pool.Close()
}

// migrate 执行数据库迁移
func (s *PostgresStorage) migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateVehicles,
		migrationCreateLocationHistory,
		migrationCreateSpeedViolations,
		migrationCreateGeofences,
		migrationCreateAlerts,
	}

	for _, m := range migrations {
		if _, err := s.pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}
	return nil
}

// 数据库迁移 SQL
const migrationCreateVehicles = `
CREATE TABLE IF NOT EXISTS vehicles (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    license_plate TEXT NOT NULL UNIQUE,
    model TEXT,
    status TEXT NOT NULL DEFAULT 'offline',
    ignition TEXT NOT NULL DEFAULT 'off',
    current_speed INT NOT NULL DEFAULT 0,
    speed_limit INT NOT NULL DEFAULT 80,
    heading INT NOT NULL DEFAULT 0,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    accuracy DOUBLE PRECISION NOT NULL DEFAULT 5,
    last_update TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    battery_level INT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_vehicles_license_plate ON vehicles(LOWER(license_plate));
`

const migrationCreateLocationHistory = `
CREATE TABLE IF NOT EXISTS vehicle_location_history (
    id UUID PRIMARY KEY,
    vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    speed INT NOT NULL DEFAULT 0,
    heading INT NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    ignition TEXT NOT NULL,
    accuracy DOUBLE PRECISION,
    recorded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_location_history_vehicle_id ON vehicle_location_history(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_location_history_recorded_at ON vehicle_location_history(recorded_at);
`

const migrationCreateSpeedViolations = `
CREATE TABLE IF NOT EXISTS speed_violations (
    id UUID PRIMARY KEY,
    vehicle_id TEXT NOT NULL,
    vehicle_name TEXT NOT NULL,
    speed INT NOT NULL,
    speed_limit INT NOT NULL,
    excess_speed INT NOT NULL,
    timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    duration INT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_speed_violations_timestamp ON speed_violations(timestamp);
CREATE INDEX IF NOT EXISTS idx_speed_violations_vehicle_id ON speed_violations(vehicle_id);
`

const migrationCreateGeofences = `
CREATE TABLE IF NOT EXISTS geofences (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    type TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    center_latitude DOUBLE PRECISION,
    center_longitude DOUBLE PRECISION,
    radius DOUBLE PRECISION,
    points JSONB,
    rules JSONB NOT NULL DEFAULT '[]',
    vehicle_ids TEXT[] NOT NULL DEFAULT '{}',
    last_triggered TIMESTAMP WITH TIME ZONE,
    color TEXT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const migrationCreateAlerts = `
CREATE TABLE IF NOT EXISTS alerts (
    id UUID PRIMARY KEY,
    type TEXT NOT NULL,
    priority TEXT NOT NULL,
    vehicle_id TEXT NOT NULL,
    vehicle_name TEXT NOT NULL,
    message TEXT NOT NULL,
    timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    read BOOLEAN NOT NULL DEFAULT FALSE,
    latitude DOUBLE PRECISION,
    longitude DOUBLE PRECISION,
    speed INT,
    speed_limit INT,
    geofence_name TEXT
);
CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON alerts(timestamp);
`

// translateError 将数据库唯一约束冲突映射为存储层哨兵错误，
// 保证两种后端对重复车牌返回同一错误
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicatePlate
	}
	return err
}

const vehicleColumns = `id, name, license_plate, COALESCE(model, ''), status, ignition, current_speed, speed_limit, heading, latitude, longitude, accuracy, last_update, battery_level, created_at, updated_at`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.LicensePlate,
		&v.Model,
		&v.Status,
		&v.Ignition,
		&v.CurrentSpeed,
		&v.SpeedLimit,
		&v.Heading,
		&v.Latitude,
		&v.Longitude,
		&v.Accuracy,
		&v.LastUpdate,
		&v.BatteryLevel,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan vehicle: %w", err)
	}
	return v, nil
}

// ListVehicles 获取所有车辆
func (s *PostgresStorage) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// GetVehicle 按 ID 获取车辆
func (s *PostgresStorage) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row)
}

// GetVehicleByPlate 按车牌获取车辆，不区分大小写
func (s *PostgresStorage) GetVehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE LOWER(license_plate) = LOWER($1)`, plate)
	return scanVehicle(row)
}

// CreateVehicle 创建车辆
func (s *PostgresStorage) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, license_plate, model, status, ignition, current_speed, speed_limit, heading, latitude, longitude, accuracy, last_update, battery_level, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := s.pool.Exec(ctx, query,
		v.ID, v.Name, v.LicensePlate, v.Model, v.Status, v.Ignition,
		v.CurrentSpeed, v.SpeedLimit, v.Heading, v.Latitude, v.Longitude,
		v.Accuracy, v.LastUpdate, v.BatteryLevel, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", translateError(err))
	}
	return nil
}

// UpdateVehicle 更新车辆快照
func (s *PostgresStorage) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `
		UPDATE vehicles SET
			name = $1,
			license_plate = $2,
			model = NULLIF($3, ''),
			status = $4,
			ignition = $5,
			current_speed = $6,
			speed_limit = $7,
			heading = $8,
			latitude = $9,
			longitude = $10,
			accuracy = $11,
			last_update = $12,
			battery_level = $13,
			updated_at = $14
		WHERE id = $15
	`
	tag, err := s.pool.Exec(ctx, query,
		v.Name, v.LicensePlate, v.Model, v.Status, v.Ignition,
		v.CurrentSpeed, v.SpeedLimit, v.Heading, v.Latitude, v.Longitude,
		v.Accuracy, v.LastUpdate, v.BatteryLevel, v.UpdatedAt, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVehicle 删除车辆，位置历史随外键级联删除
func (s *PostgresStorage) DeleteVehicle(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSample 追加位置历史记录
func (s *PostgresStorage) CreateSample(ctx context.Context, sample *models.LocationSample) error {
	query := `
		INSERT INTO vehicle_location_history (id, vehicle_id, latitude, longitude, speed, heading, status, ignition, accuracy, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.pool.Exec(ctx, query,
		sample.ID, sample.VehicleID, sample.Latitude, sample.Longitude,
		sample.Speed, sample.Heading, sample.Status, sample.Ignition,
		sample.Accuracy, sample.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location sample: %w", err)
	}
	return nil
}

const sampleColumns = `id, vehicle_id, latitude, longitude, speed, heading, status, ignition, accuracy, recorded_at`

func scanSamples(rows pgx.Rows) ([]*models.LocationSample, error) {
	defer rows.Close()

	var samples []*models.LocationSample
	for rows.Next() {
		sm := &models.LocationSample{}
		err := rows.Scan(
			&sm.ID, &sm.VehicleID, &sm.Latitude, &sm.Longitude,
			&sm.Speed, &sm.Heading, &sm.Status, &sm.Ignition,
			&sm.Accuracy, &sm.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan location sample: %w", err)
		}
		samples = append(samples, sm)
	}
	return samples, rows.Err()
}

// ListSamples 获取单辆车时间窗口内的位置历史，按 recorded_at 升序
func (s *PostgresStorage) ListSamples(ctx context.Context, vehicleID string, start, end time.Time) ([]*models.LocationSample, error) {
	query := `
		SELECT ` + sampleColumns + ` FROM vehicle_location_history
		WHERE vehicle_id = $1 AND recorded_at >= $2 AND recorded_at <= $3
		ORDER BY recorded_at
	`
	rows, err := s.pool.Query(ctx, query, vehicleID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	return scanSamples(rows)
}

// ListAllSamples 获取所有车辆时间窗口内的位置历史
func (s *PostgresStorage) ListAllSamples(ctx context.Context, start, end time.Time) ([]*models.LocationSample, error) {
	query := `
		SELECT ` + sampleColumns + ` FROM vehicle_location_history
		WHERE recorded_at >= $1 AND recorded_at <= $2
		ORDER BY recorded_at
	`
	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list all samples: %w", err)
	}
	return scanSamples(rows)
}

// CreateViolation 记录超速违章
func (s *PostgresStorage) CreateViolation(ctx context.Context, v *models.SpeedViolation) error {
	query := `
		INSERT INTO speed_violations (id, vehicle_id, vehicle_name, speed, speed_limit, excess_speed, timestamp, latitude, longitude, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.pool.Exec(ctx, query,
		v.ID, v.VehicleID, v.VehicleName, v.Speed, v.SpeedLimit,
		v.ExcessSpeed, v.Timestamp, v.Latitude, v.Longitude, v.Duration,
	)
	if err != nil {
		return fmt.Errorf("insert speed violation: %w", err)
	}
	return nil
}

// ListViolations 获取时间窗口内的违章记录，按时间倒序
func (s *PostgresStorage) ListViolations(ctx context.Context, start, end time.Time) ([]*models.SpeedViolation, error) {
	query := `
		SELECT id, vehicle_id, vehicle_name, speed, speed_limit, excess_speed, timestamp, latitude, longitude, duration
		FROM speed_violations
		WHERE timestamp >= $1 AND timestamp <= $2
		ORDER BY timestamp DESC
	`
	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	defer rows.Close()

	var violations []*models.SpeedViolation
	for rows.Next() {
		v := &models.SpeedViolation{}
		err := rows.Scan(
			&v.ID, &v.VehicleID, &v.VehicleName, &v.Speed, &v.SpeedLimit,
			&v.ExcessSpeed, &v.Timestamp, &v.Latitude, &v.Longitude, &v.Duration,
		)
		if err != nil {
			return nil, fmt.Errorf("scan violation: %w", err)
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}

func scanGeofence(row pgx.Row) (*models.Geofence, error) {
	g := &models.Geofence{}
	var centerLat, centerLon *float64
	var pointsJSON, rulesJSON []byte

	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.Type, &g.Active,
		&centerLat, &centerLon, &g.Radius, &pointsJSON, &rulesJSON,
		&g.VehicleIDs, &g.LastTriggered, &g.Color, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan geofence: %w", err)
	}

	if centerLat != nil && centerLon != nil {
		g.Center = &models.LatLng{Latitude: *centerLat, Longitude: *centerLon}
	}
	if len(pointsJSON) > 0 {
		if err := json.Unmarshal(pointsJSON, &g.Points); err != nil {
			return nil, fmt.Errorf("decode geofence points: %w", err)
		}
	}
	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &g.Rules); err != nil {
			return nil, fmt.Errorf("decode geofence rules: %w", err)
		}
	}
	return g, nil
}

const geofenceColumns = `id, name, COALESCE(description, ''), type, active, center_latitude, center_longitude, radius, points, rules, vehicle_ids, last_triggered, COALESCE(color, ''), created_at, updated_at`

// ListGeofences 获取所有围栏
func (s *PostgresStorage) ListGeofences(ctx context.Context) ([]*models.Geofence, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+geofenceColumns+` FROM geofences ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	defer rows.Close()

	var geofences []*models.Geofence
	for rows.Next() {
		g, err := scanGeofence(rows)
		if err != nil {
			return nil, err
		}
		geofences = append(geofences, g)
	}
	return geofences, rows.Err()
}

// GetGeofence 按 ID 获取围栏
func (s *PostgresStorage) GetGeofence(ctx context.Context, id string) (*models.Geofence, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+geofenceColumns+` FROM geofences WHERE id = $1`, id)
	return scanGeofence(row)
}

func geofenceJSON(g *models.Geofence) (points, rules []byte, err error) {
	points, err = json.Marshal(g.Points)
	if err != nil {
		return nil, nil, fmt.Errorf("encode geofence points: %w", err)
	}
	if g.Rules == nil {
		g.Rules = []models.GeofenceRule{}
	}
	rules, err = json.Marshal(g.Rules)
	if err != nil {
		return nil, nil, fmt.Errorf("encode geofence rules: %w", err)
	}
	return points, rules, nil
}

// CreateGeofence 创建围栏
func (s *PostgresStorage) CreateGeofence(ctx context.Context, g *models.Geofence) error {
	pointsJSON, rulesJSON, err := geofenceJSON(g)
	if err != nil {
		return err
	}

	var centerLat, centerLon *float64
	if g.Center != nil {
		centerLat, centerLon = &g.Center.Latitude, &g.Center.Longitude
	}
	if g.VehicleIDs == nil {
		g.VehicleIDs = []string{}
	}

	query := `
		INSERT INTO geofences (id, name, description, type, active, center_latitude, center_longitude, radius, points, rules, vehicle_ids, last_triggered, color, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15)
	`
	_, err = s.pool.Exec(ctx, query,
		g.ID, g.Name, g.Description, g.Type, g.Active,
		centerLat, centerLon, g.Radius, pointsJSON, rulesJSON,
		g.VehicleIDs, g.LastTriggered, g.Color, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert geofence: %w", err)
	}
	return nil
}

// UpdateGeofence 更新围栏
func (s *PostgresStorage) UpdateGeofence(ctx context.Context, g *models.Geofence) error {
	pointsJSON, rulesJSON, err := geofenceJSON(g)
	if err != nil {
		return err
	}

	var centerLat, centerLon *float64
	if g.Center != nil {
		centerLat, centerLon = &g.Center.Latitude, &g.Center.Longitude
	}

	query := `
		UPDATE geofences SET
			name = $1,
			description = NULLIF($2, ''),
			type = $3,
			active = $4,
			center_latitude = $5,
			center_longitude = $6,
			radius = $7,
			points = $8,
			rules = $9,
			vehicle_ids = $10,
			last_triggered = $11,
			color = NULLIF($12, ''),
			updated_at = $13
		WHERE id = $14
	`
	tag, err := s.pool.Exec(ctx, query,
		g.Name, g.Description, g.Type, g.Active,
		centerLat, centerLon, g.Radius, pointsJSON, rulesJSON,
		g.VehicleIDs, g.LastTriggered, g.Color, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return fmt.Errorf("update geofence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGeofence 删除围栏
func (s *PostgresStorage) DeleteGeofence(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM geofences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete geofence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const alertColumns = `id, type, priority, vehicle_id, vehicle_name, message, timestamp, read, latitude, longitude, speed, speed_limit, COALESCE(geofence_name, '')`

func scanAlert(row pgx.Row) (*models.Alert, error) {
	a := &models.Alert{}
	err := row.Scan(
		&a.ID, &a.Type, &a.Priority, &a.VehicleID, &a.VehicleName,
		&a.Message, &a.Timestamp, &a.Read, &a.Latitude, &a.Longitude,
		&a.Speed, &a.SpeedLimit, &a.GeofenceName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan alert: %w", err)
	}
	return a, nil
}

// ListAlerts 获取所有告警，按时间倒序
func (s *PostgresStorage) ListAlerts(ctx context.Context) ([]*models.Alert, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// GetAlert 按 ID 获取告警
func (s *PostgresStorage) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
	return scanAlert(row)
}

// CreateAlert 创建告警
func (s *PostgresStorage) CreateAlert(ctx context.Context, a *models.Alert) error {
	query := `
		INSERT INTO alerts (id, type, priority, vehicle_id, vehicle_name, message, timestamp, read, latitude, longitude, speed, speed_limit, geofence_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''))
	`
	_, err := s.pool.Exec(ctx, query,
		a.ID, a.Type, a.Priority, a.VehicleID, a.VehicleName,
		a.Message, a.Timestamp, a.Read, a.Latitude, a.Longitude,
		a.Speed, a.SpeedLimit, a.GeofenceName,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// UpdateAlert 更新告警（已读标记与内容）
func (s *PostgresStorage) UpdateAlert(ctx context.Context, a *models.Alert) error {
	tag, err := s.pool.Exec(ctx, `UPDATE alerts SET read = $1, message = $2 WHERE id = $3`, a.Read, a.Message, a.ID)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllAlertsRead 全部标记已读
func (s *PostgresStorage) MarkAllAlertsRead(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `UPDATE alerts SET read = TRUE`); err != nil {
		return fmt.Errorf("mark alerts read: %w", err)
	}
	return nil
}

// ClearReadAlerts 清除已读告警
func (s *PostgresStorage) ClearReadAlerts(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM alerts WHERE read = TRUE`); err != nil {
		return fmt.Errorf("clear read alerts: %w", err)
	}
	return nil
}
