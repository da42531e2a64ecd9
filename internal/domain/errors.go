package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrAccessDenied = errors.New("Access denied")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrSelfTransferNotAllowed = errors.New("Cannot transfer to yourself")
var ErrTransferKeyInvalid = errors.New("Transfer key not found, expired, or already used")
var ErrPixKeyTaken = errors.New("Pix key value is already registered")
var ErrEmailTaken = errors.New("Email already in use")
