package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"payledger/model"
	"payledger/utility"
	"payledger/utility/errorcode"
	"payledger/utility/response"
)

// GetCapabilities ... Advertises the recovery actions this deployment supports
// @Summary recovery capabilities
// @Router /crypto/recovery [get]
func (controller *RecoveryController) GetCapabilities(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()
	responseData := controller.RecoveryService.Capabilities()
	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, responseData))
}

// PostAction ... Dispatches a recovery action on a payment. "recover" moves a
// stuck PENDING payment to REFUNDED, "verify" runs the read-only legitimacy
// checks, "sweep" triggers an expiry pass outside the schedule.
// @Summary run a recovery action
// @Router /crypto/recovery [post]
func (controller *RecoveryController) PostAction(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()
	requestData := model.RecoveryActionRequest{}

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "PostAction", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	json.NewDecoder(requestReader.Body).Decode(&requestData)
	controller.Logger.Info("Incoming request details for PostAction : action : %s, paymentID : %s, operatorID : %v", requestData.Action, requestData.PaymentID, claims.UserID)

	action := strings.ToLower(strings.TrimSpace(requestData.Action))
	if action == "sweep" {
		report, err := controller.RecoveryService.AutoRecoverExpiredPayments(controller.Repository)
		if err != nil {
			status, payload := errResponse(err, apiResponse)
			ReturnError(responseWriter, "PostAction", status, err, payload, controller.Logger)
			return
		}
		writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, report))
		return
	}

	if validationErr := ValidateRequest(controller.Validator, requestData, controller.Translator); len(validationErr) > 0 {
		writeJSON(responseWriter, http.StatusBadRequest, apiResponse.ValidateError(errorcode.VALIDATION_ERR, errorcode.VALIDATION_ERR_MSG, validationErr))
		return
	}

	paymentID, err := utility.ToUUID(requestData.PaymentID)
	if err != nil {
		ReturnError(responseWriter, "PostAction", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.UUID_CAST_ERR_MSG), controller.Logger)
		return
	}

	switch action {
	case "recover":
		record, err := controller.RecoveryService.RecoverPayment(controller.Repository, claims.UserID, paymentID, requestData.Reason)
		if err != nil {
			status, payload := errResponse(err, apiResponse)
			ReturnError(responseWriter, "PostAction", status, err, payload, controller.Logger)
			return
		}
		writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, record))
	case "verify":
		result, err := controller.RecoveryService.VerifyPaymentLegitimacy(controller.Repository, paymentID)
		if err != nil {
			status, payload := errResponse(err, apiResponse)
			ReturnError(responseWriter, "PostAction", status, err, payload, controller.Logger)
			return
		}
		writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, result))
	default:
		message := fmt.Sprintf("Action %s is not supported", requestData.Action)
		ReturnError(responseWriter, "PostAction", http.StatusBadRequest, errors.New(message), apiResponse.PlainError(errorcode.INPUT_ERR, message), controller.Logger)
	}
}
