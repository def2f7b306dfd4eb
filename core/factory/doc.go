// Package factory provides a small generic registry used to instantiate
// pluggable modules (geocoding providers, metrics sinks, search log stores)
// from configuration. A module is described by a type string and a map of
// raw settings; factories decode the settings into typed structs and return
// the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[geocode.Provider]()
//	reg.Register("static", func(conf map[string]any) (geocode.Provider, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return LoadStaticProvider(c.Path)
//	})
//	p, err := reg.Create(factory.ModuleConfig{Type: "static", Conf: map[string]any{"path": "places.yaml"}})
package factory
