package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID          int        `gorm:"primary_key" json:"id"`
	Email       string     `gorm:"size:255;not null;unique" json:"email" binding:"required"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name" binding:"required"`
	LastName    string     `gorm:"size:100" json:"last_name"`
	Phone       string     `gorm:"size:20" json:"phone"`
	Password    string     `gorm:"size:255;not null" json:"password"`
	Role        UserRole   `gorm:"index;size:20;not null" json:"role"`
	CompanyId   *int       `gorm:"index" json:"company_id"`
	BranchId    *int       `gorm:"index" json:"branch_id"`
	IsActive    *bool      `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (result *User) PrepareGive() {
	result.Password = ""
}

type NewUser struct {
	Email     string   `json:"email" binding:"required"`
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name"`
	Phone     string   `json:"phone"`
	Password  string   `json:"password" binding:"required"`
	Role      UserRole `json:"role" binding:"required"`
	CompanyId *int     `json:"company_id"`
	BranchId  *int     `json:"branch_id"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginInfo struct {
	Token       string   `json:"token"`
	Name        string   `json:"name"`
	Role        UserRole `json:"role"`
	CompanyId   int      `json:"company_id"`
	CompanyName string   `json:"company_name,omitempty"`
	BranchId    int      `json:"branch_id"`
}

// LoginHistory keeps an audit trail of login attempts; the auditor dashboard
// surfaces the recent successful ones.
type LoginHistory struct {
	ID             int         `gorm:"primary_key" json:"id"`
	UserId         *int        `gorm:"index" json:"user_id"`
	EmailAttempted string      `gorm:"size:255;not null" json:"email_attempted"`
	Status         LoginStatus `gorm:"index;size:20;not null" json:"status"`
	FailureReason  string      `gorm:"size:255" json:"failure_reason"`
	IpAddress      string      `gorm:"size:45" json:"ip_address"`
	UserAgent      string      `gorm:"type:text" json:"user_agent"`
	Timestamp      time.Time   `gorm:"index;autoCreateTime" json:"timestamp"`
}

func (input *NewUser) validate() error {
	if !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if _, err := ParseUserRole(string(input.Role)); err != nil {
		return err
	}
	if input.Role.IsCompanyScoped() && (input.CompanyId == nil || *input.CompanyId <= 0) {
		return errors.New("company is required for this role")
	}
	if len(strings.TrimSpace(input.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	return nil
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Password:  string(hashed),
		Role:      input.Role,
		CompanyId: input.CompanyId,
		BranchId:  input.BranchId,
		IsActive:  utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

// Login authenticates, issues a JWT and records the attempt in login history.
// Failures are recorded too; history write errors are logged, never fatal.
func Login(ctx context.Context, input *LoginInput, ipAddress string, userAgent string) (*LoginInfo, error) {
	db := config.GetDB()
	logger := config.GetLogger()

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			recordLogin(ctx, nil, email, LoginStatusFailed, "unknown email", ipAddress, userAgent)
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}

	if user.IsActive == nil || !*user.IsActive {
		recordLogin(ctx, &user.ID, email, LoginStatusInactive, "account inactive", ipAddress, userAgent)
		return nil, errors.New("account is inactive")
	}

	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		recordLogin(ctx, &user.ID, email, LoginStatusFailed, "wrong password", ipAddress, userAgent)
		return nil, errors.New("invalid email or password")
	}

	companyId := utils.DereferencePtr(user.CompanyId, 0)
	branchId := utils.DereferencePtr(user.BranchId, 0)

	token, err := utils.JwtGenerate(user.ID, string(user.Role), companyId, branchId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := db.WithContext(ctx).Model(&User{}).Where("id = ?", user.ID).
		Update("last_login_at", now).Error; err != nil {
		config.LogError(logger, "user.go", "Login", "update last_login_at", user.ID, err)
	}

	recordLogin(ctx, &user.ID, email, LoginStatusSuccess, "", ipAddress, userAgent)

	info := &LoginInfo{
		Token:     token,
		Name:      user.FullName(),
		Role:      user.Role,
		CompanyId: companyId,
		BranchId:  branchId,
	}
	if companyId > 0 {
		if company, err := GetCompanyById(utils.SetSkipCompanyScopeInContext(ctx, true), companyId); err == nil {
			info.CompanyName = company.Name
		}
	}
	return info, nil
}

func recordLogin(ctx context.Context, userId *int, email string, status LoginStatus, reason string, ipAddress string, userAgent string) {
	db := config.GetDB()
	entry := LoginHistory{
		UserId:         userId,
		EmailAttempted: email,
		Status:         status,
		FailureReason:  reason,
		IpAddress:      ipAddress,
		UserAgent:      userAgent,
		Timestamp:      time.Now(),
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		config.LogError(config.GetLogger(), "user.go", "recordLogin", "create login history", email, err)
	}
}
