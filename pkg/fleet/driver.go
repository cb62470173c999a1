package fleet

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minLicenseLength = 11

// checkDriverUnique enforces uniqueness of email and license number among the
// profile's ACTIVE drivers only; a deactivated driver's identifiers may be
// reused.
func (f *Fleet) checkDriverUnique(profileID, email, license, excludeID string) error {
	count := func(field, value string) (int64, error) {
		q := f.Db.Conn.Model(&models.Driver{}).
			Where("profile_id = ? AND is_active = ? AND "+field+" = ?", profileID, true, value)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		var n int64
		err := q.Count(&n).Error
		return n, err
	}

	if n, err := count("email", email); err != nil {
		return err
	} else if n > 0 {
		return NewValidationError("email", "this email is already in use by an active driver")
	}
	if n, err := count("license_number", license); err != nil {
		return err
	} else if n > 0 {
		return NewValidationError("license_number", "this license number is already in use by an active driver")
	}
	return nil
}

func validateDriverInput(input *models.Driver) error {
	if input.FullName == "" {
		return NewValidationError("full_name", "full name is required")
	}
	if !emailPattern.MatchString(input.Email) {
		return NewValidationError("email", "invalid email address")
	}
	if len(input.LicenseNumber) < minLicenseLength {
		return NewValidationError("license_number", "license number must have at least %d characters", minLicenseLength)
	}
	return nil
}

func (f *Fleet) createDriver(profileID string, input *models.Driver) (*models.Driver, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryDriver),
	)

	if err := validateDriverInput(input); err != nil {
		return nil, err
	}
	if err := f.checkDriverUnique(profileID, input.Email, input.LicenseNumber, ""); err != nil {
		return nil, err
	}

	driver := models.Driver{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		FullName:      input.FullName,
		Email:         input.Email,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		AdmissionDate: input.AdmissionDate,
		IsActive:      true,
	}
	if err := f.Db.Conn.Create(&driver).Error; err != nil {
		return nil, err
	}
	logger.Info("Driver created", zap.String("driver_id", driver.ID))
	return &driver, nil
}

func (f *Fleet) updateDriver(profileID, driverID string, input *models.Driver) (*models.Driver, error) {
	var driver models.Driver
	err := f.Db.Conn.First(&driver, "id = ? AND profile_id = ?", driverID, profileID).Error
	if err != nil {
		return nil, err
	}

	if err := validateDriverInput(input); err != nil {
		return nil, err
	}
	if driver.IsActive {
		if err := f.checkDriverUnique(profileID, input.Email, input.LicenseNumber, driverID); err != nil {
			return nil, err
		}
	}

	driver.FullName = input.FullName
	driver.Email = input.Email
	driver.Phone = input.Phone
	driver.LicenseNumber = input.LicenseNumber
	driver.AdmissionDate = input.AdmissionDate

	if err := f.Db.Conn.Save(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

// deactivateDriver soft-disables: the record stays for route history, the
// identifiers become reusable.
func (f *Fleet) deactivateDriver(profileID, driverID string, now time.Time) error {
	var driver models.Driver
	err := f.Db.Conn.First(&driver, "id = ? AND profile_id = ?", driverID, profileID).Error
	if err != nil {
		return err
	}

	driver.IsActive = false
	demission := now
	driver.DemissionDate = &demission
	return f.Db.Conn.Save(&driver).Error
}

func (f *Fleet) reactivateDriver(profileID, driverID string) error {
	var driver models.Driver
	err := f.Db.Conn.First(&driver, "id = ? AND profile_id = ?", driverID, profileID).Error
	if err != nil {
		return err
	}

	// Another active driver may have taken the identifiers meanwhile.
	if err := f.checkDriverUnique(profileID, driver.Email, driver.LicenseNumber, driverID); err != nil {
		return err
	}

	driver.IsActive = true
	driver.DemissionDate = nil
	return f.Db.Conn.Save(&driver).Error
}

func (f *Fleet) listDrivers(profileID string) ([]models.Driver, error) {
	var drivers []models.Driver
	err := f.Db.Conn.
		Where("profile_id = ?", profileID).
		Order("full_name").
		Find(&drivers).Error
	return drivers, err
}

type IDriverImpl struct {
	fleet *Fleet
}

func (id *IDriverImpl) CreateDriver(profileID string, input *models.Driver) (*models.Driver, error) {
	return id.fleet.createDriver(profileID, input)
}

func (id *IDriverImpl) UpdateDriver(profileID, driverID string, input *models.Driver) (*models.Driver, error) {
	return id.fleet.updateDriver(profileID, driverID, input)
}

func (id *IDriverImpl) DeactivateDriver(profileID, driverID string, now time.Time) error {
	return id.fleet.deactivateDriver(profileID, driverID, now)
}

func (id *IDriverImpl) ReactivateDriver(profileID, driverID string) error {
	return id.fleet.reactivateDriver(profileID, driverID)
}

func (id *IDriverImpl) ListDrivers(profileID string) ([]models.Driver, error) {
	return id.fleet.listDrivers(profileID)
}

func (f *Fleet) GetIDriver() IDriver {
	return &IDriverImpl{fleet: f}
}
