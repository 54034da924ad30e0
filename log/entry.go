package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Fields logrus.Fields

// Entry is like a logrus.Entry, but nullable: chaining off a disabled Entry
// costs nothing beyond the mod.Enabled check done by its owner.
type Entry struct {
	mod    Module
	fields Fields
}

func (entry Entry) log() *logrus.Entry {
	final := logrus.StandardLogger().WithField("mod", modNames[entry.mod])
	if entry.fields != nil {
		final = final.WithFields(logrus.Fields(entry.fields))
	}
	return final
}

func (entry Entry) WithFields(fields Fields) Entry {
	entry.fields = fields
	return entry
}

func (entry Entry) WithField(key string, value any) Entry {
	return entry.WithFields(Fields{key: value})
}

func (entry Entry) Debugf(format string, args ...any) {
	if entry.mod.Enabled(DebugLevel) {
		entry.log().Debugf(format, args...)
	}
}

func (entry Entry) Infof(format string, args ...any) {
	if entry.mod.Enabled(InfoLevel) {
		entry.log().Infof(format, args...)
	}
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.log().Warnf(format, args...)
	}
}

func (entry Entry) Errorf(format string, args ...any) {
	if entry.mod.Enabled(ErrorLevel) {
		entry.log().Errorf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	if entry.mod.Enabled(FatalLevel) {
		entry.log().Fatalf(format, args...)
	}
}

// EntryZ is the zero-alloc field-chaining counterpart to Entry, returned by
// the *Z family (DebugZ, WarnZ, ...). A disabled call returns a nil *EntryZ,
// and every chain method below tolerates that receiver.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [8]ZField
	zfidx int
}

func newEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) push(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx < len(e.zfbuf) {
		e.zfbuf[e.zfidx] = f
		e.zfidx++
	}
	return e
}

func (e *EntryZ) Bool(key string, v bool) *EntryZ {
	return e.push(ZField{Type: FieldTypeBool, Key: key, Boolean: v})
}

func (e *EntryZ) String(key, v string) *EntryZ {
	return e.push(ZField{Type: FieldTypeString, Key: key, String: v})
}

func (e *EntryZ) Hex8(key string, v uint8) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex16(key string, v uint16) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex32(key string, v uint32) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint8(key string, v uint8) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint16(key string, v uint16) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Int(key string, v int) *EntryZ {
	return e.push(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(int64(v))})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.push(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (e *EntryZ) Stringer(key string, v interface{ String() string }) *EntryZ {
	return e.push(ZField{Type: FieldTypeStringer, Key: key, Iface: v})
}

// End flushes the entry to logrus. Calling End on a nil *EntryZ is a no-op,
// which is how the *Z family stays free when its level is disabled.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	fields := make(logrus.Fields, e.zfidx+1)
	fields["mod"] = modNames[e.mod]
	for _, f := range e.zfbuf[:e.zfidx] {
		fields[f.Key] = f.Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case PanicLevel:
		entry.Panic(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case DebugLevel:
		entry.Debug(e.msg)
	}
}
