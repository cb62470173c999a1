package models

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusOnRoute     VehicleStatus = "on_route"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusDisabled    VehicleStatus = "disabled"
)

type ScheduleStatus string

const (
	ScheduleStatusScheduled  ScheduleStatus = "scheduled"
	ScheduleStatusInProgress ScheduleStatus = "in_progress"
	ScheduleStatusCompleted  ScheduleStatus = "completed"
	ScheduleStatusCanceled   ScheduleStatus = "canceled"
)

// IsTerminal reports whether the status is completed or canceled. Terminal
// records never participate in conflict detection or mileage accumulation.
func (s ScheduleStatus) IsTerminal() bool {
	return s == ScheduleStatusCompleted || s == ScheduleStatusCanceled
}

type AlertPriority string

const (
	AlertPriorityLow    AlertPriority = "low"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityHigh   AlertPriority = "high"
)

type Profile struct {
	ID          string `gorm:"primaryKey;size:36"`
	CompanyName string `gorm:"size:100"`
	CNPJ        string `gorm:"uniqueIndex;size:14"`
	CreatedAt   time.Time
}

type Driver struct {
	ID            string `gorm:"primaryKey;size:36"`
	ProfileID     string `gorm:"index;size:36;not null"`
	FullName      string `gorm:"size:100;not null"`
	Email         string `gorm:"size:254;not null"`
	Phone         string `gorm:"size:20"`
	LicenseNumber string `gorm:"size:30;not null"`
	AdmissionDate time.Time
	IsActive      bool `gorm:"default:true"`
	DemissionDate *time.Time
}

type Vehicle struct {
	ID              string        `gorm:"primaryKey;size:36"`
	ProfileID       string        `gorm:"index:idx_vehicle_profile_plate,unique;size:36;not null"`
	Plate           string        `gorm:"index:idx_vehicle_profile_plate,unique;size:10;not null"`
	Model           string        `gorm:"size:50"`
	Year            int           `gorm:"not null"`
	Status          VehicleStatus `gorm:"type:varchar(20);default:'available';check:status IN ('available','on_route','maintenance','disabled')"`
	InitialMileage  int           `gorm:"not null"`
	DriverID        *string       `gorm:"index;size:36"`
	AcquisitionDate time.Time
	// Km per liter, used for estimated fuel cost on routes.
	AverageFuelConsumption *float64 `gorm:"type:decimal(5,2)"`
}

type Maintenance struct {
	ID               string `gorm:"primaryKey;size:36"`
	ProfileID        string `gorm:"index;size:36;not null"`
	VehicleID        string `gorm:"index;size:36;not null"`
	ServiceType      string `gorm:"size:100;not null"`
	StartDate        time.Time
	EndDate          time.Time
	MechanicShopName string   `gorm:"size:100"`
	EstimatedCost    *float64 `gorm:"type:decimal(10,2)"`
	ActualCost       *float64 `gorm:"type:decimal(10,2)"`
	ActualEndDate    *time.Time
	// Odometer reading captured when the service was scheduled. The alert
	// engine uses it as the distance baseline for the service type.
	CurrentMileage int            `gorm:"not null"`
	Notes          string         `gorm:"type:text"`
	Status         ScheduleStatus `gorm:"type:varchar(20);default:'scheduled';check:status IN ('scheduled','in_progress','completed','canceled')"`
}

type Route struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProfileID string `gorm:"index;size:36;not null"`
	// Weak back-references: either may be nulled when the referenced entity
	// is removed, the route record survives.
	VehicleID *string `gorm:"index;size:36"`
	DriverID  *string `gorm:"index;size:36"`

	StartLocation string `gorm:"size:255;not null"`
	EndLocation   string `gorm:"size:255;not null"`
	StartTime     time.Time
	EndTime       time.Time
	Status        ScheduleStatus `gorm:"type:varchar(20);default:'scheduled';check:status IN ('scheduled','in_progress','completed','canceled')"`

	EstimatedDistance *float64 `gorm:"type:decimal(10,2)"`
	ActualDistance    *float64 `gorm:"type:decimal(10,2)"`
	FuelPricePerLiter *float64 `gorm:"type:decimal(6,2)"`
	EstimatedTollCost *float64 `gorm:"type:decimal(10,2)"`
}

type AlertConfiguration struct {
	ID            string `gorm:"primaryKey;size:36"`
	ProfileID     string `gorm:"index:idx_alert_config_profile_service,unique;size:36;not null"`
	ServiceType   string `gorm:"index:idx_alert_config_profile_service,unique;size:100;not null"`
	KmThreshold   *int
	DaysThreshold *int
	IsActive      bool          `gorm:"default:true"`
	Priority      AlertPriority `gorm:"type:varchar(10);default:'medium';check:priority IN ('low','medium','high')"`
}
