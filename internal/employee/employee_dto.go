package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	FullName       string          `json:"full_name" binding:"required,max=255"`
	Email          string          `json:"email" binding:"required,email"`
	UserID         string          `json:"user_id" binding:"omitempty,uuid"`
	EmployeeNumber string          `json:"employee_number" binding:"omitempty,max=50"`
	Phone          string          `json:"phone" binding:"omitempty,max=50"`
	Department     string          `json:"department" binding:"omitempty,max=100"`
	Position       string          `json:"position" binding:"omitempty,max=100"`
	Salary         decimal.Decimal `json:"salary"`
}

type UpdateEmployeeRequest struct {
	FullName       string          `json:"full_name" binding:"required,max=255"`
	Email          string          `json:"email" binding:"required,email"`
	UserID         string          `json:"user_id" binding:"omitempty,uuid"`
	EmployeeNumber string          `json:"employee_number" binding:"required,max=50"`
	Phone          string          `json:"phone" binding:"omitempty,max=50"`
	Department     string          `json:"department" binding:"omitempty,max=100"`
	Position       string          `json:"position" binding:"omitempty,max=100"`
	Salary         decimal.Decimal `json:"salary"`
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id,omitempty"`
	EmployeeNumber string          `json:"employee_number"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Department     string          `json:"department,omitempty"`
	Position       string          `json:"position,omitempty"`
	Salary         decimal.Decimal `json:"salary"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
