package config

type AppConfig struct {
	ServicePort int    `yaml:"port"`
	ServiceName string `yaml:"name"`
}

func (s *AppConfig) Port() int {
	return s.ServicePort
}

func (s *AppConfig) Name() string {
	return s.ServiceName
}
