package gconf

import (
	"reflect"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x"
)

// OwnedConfig must have an Owner field. A configuration update instruction
// must be signed by an owner in order to be authorized to apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() weave.Address
}

// UpdateConfigurationHandler processes instructions that carry a serialized
// configuration patch as their data.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config OwnedConfig
	auth   x.Authenticator
}

var _ weave.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a handler that process configuration
// patch instructions.
//
// To pass authentication step, each instruction must be signed by the
// current configuration owner. Zero value fields of the patch do not modify
// the stored configuration.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx weave.Context, store weave.KVStore, tx weave.Tx) error {
	// Work on a fresh copy so that the handler can be reused.
	config := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)
	if err := Load(store, h.pkg, config); err != nil {
		return errors.Wrap(err, "load current configuration")
	}

	// Configuration owner must sign the transaction in order to
	// authenticate the change.
	owner := config.GetOwner()
	if owner == nil {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}

	payload, err := h.patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get instruction payload")
	}
	if err := patch(config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with instruction payload")
	}

	if err := Save(store, h.pkg, config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

func patch(config OwnedConfig, payload OwnedConfig) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if !pType.ConvertibleTo(cType) {
		return errors.Wrap(errors.ErrMsg, "config in instruction doesn't match store")
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()

	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)

		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}

		cval.Field(i).Set(got)
	}

	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	if val.Kind() == reflect.Slice {
		return val.Len() == 0
	}
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload decodes the instruction data into a new configuration
// instance of the handled type.
func (h UpdateConfigurationHandler) patchPayload(tx weave.Tx) (OwnedConfig, error) {
	ix, err := weave.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	if len(ix.Data) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "patch")
	}
	payload := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)
	if err := payload.Unmarshal(ix.Data); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot decode patch: %s", err)
	}
	return payload, nil
}
